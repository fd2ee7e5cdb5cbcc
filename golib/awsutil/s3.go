package awsutil

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/satdlab/satdprep/golib/errors"
)

// discoveryRegion is where bucket locations are looked up.
const discoveryRegion = "us-west-1"

// DefaultClient is used by the package level helpers.
var DefaultClient = &Client{}

// Client reads and writes S3 objects.
type Client struct {
	// API is used for every bucket when set; otherwise a client is created for
	// Region, or for the bucket's own region when Region is empty.
	API    s3iface.S3API
	Region string
}

// IsS3URI returns true if the path is an s3 uri.
func IsS3URI(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ValidateURI checks whether the given uri points to S3 and names an object.
func ValidateURI(uri string) (*url.URL, error) {
	s3url, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", uri)
	}
	if s3url.Scheme != "s3" {
		return nil, errors.Errorf("%s: url is not a s3 path", uri)
	}
	if s3url.Host == "" {
		return nil, errors.Errorf("%s: missing bucket", uri)
	}
	return s3url, nil
}

func objectKey(u *url.URL) string {
	return strings.TrimPrefix(u.Path, "/")
}

// NewS3Reader reads the object at uri with DefaultClient.
func NewS3Reader(uri string) (io.ReadCloser, error) {
	return DefaultClient.NewReader(uri)
}

// NewBufferedS3Writer buffers writes and uploads them to uri with
// DefaultClient on Close.
func NewBufferedS3Writer(uri string) (NamedWriteCloser, error) {
	return DefaultClient.NewBufferedWriter(uri)
}

// NewReader returns a io.ReadCloser that will read the contents of the file
// pointed to by the uri. URI will be of the form s3://bucket-name/path/to/file
func (c *Client) NewReader(uri string) (io.ReadCloser, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}

	api, err := c.api(s3url.Host)
	if err != nil {
		return nil, err
	}

	out, err := api.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s3url.Host),
		Key:    aws.String(objectKey(s3url)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "getting %s", uri)
	}
	return out.Body, nil
}

// PutObject writes the contents of r to uri.
func (c *Client) PutObject(r io.ReadSeeker, uri string) error {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return err
	}

	api, err := c.api(s3url.Host)
	if err != nil {
		return err
	}

	_, err = api.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s3url.Host),
		Key:    aws.String(objectKey(s3url)),
		Body:   r,
	})
	if err != nil {
		return errors.Wrapf(err, "putting %s", uri)
	}
	return nil
}

func (c *Client) api(bucket string) (s3iface.S3API, error) {
	if c.API != nil {
		return c.API, nil
	}

	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}

	region := c.Region
	if region == "" {
		region, err = bucketRegion(s3.New(sess, aws.NewConfig().WithRegion(discoveryRegion)), bucket)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to determine region of %s", bucket)
		}
	}
	return s3.New(sess, aws.NewConfig().WithRegion(region)), nil
}

func bucketRegion(api s3iface.S3API, bucket string) (string, error) {
	out, err := api.GetBucketLocation(&s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", err
	}
	if out.LocationConstraint == nil || *out.LocationConstraint == "" {
		return "us-east-1", nil
	}
	return *out.LocationConstraint, nil
}

// NamedWriteCloser is a file-like object extending io.WriteCloser with a string Name() similar to os.File.Name()
type NamedWriteCloser interface {
	io.WriteCloser
	Name() string
}

type bufferedS3Writer struct {
	client *Client
	uri    string
	buf    bytes.Buffer
	closed bool
}

// NewBufferedWriter returns a NamedWriteCloser that keeps writes in memory
// and uploads them to uri on Close.
func (c *Client) NewBufferedWriter(uri string) (NamedWriteCloser, error) {
	if _, err := ValidateURI(uri); err != nil {
		return nil, err
	}
	return &bufferedS3Writer{client: c, uri: uri}, nil
}

// Write appends to the buffer.
func (w *bufferedS3Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.Errorf("write to closed s3 writer %s", w.uri)
	}
	return w.buf.Write(p)
}

// Close uploads the buffered data.
func (w *bufferedS3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.client.PutObject(bytes.NewReader(w.buf.Bytes()), w.uri)
}

func (w *bufferedS3Writer) Name() string {
	return w.uri
}
