package hms

import "github.com/apache/thrift/lib/go/thrift"

// ClientError is a failure of the connection to the metastore, as opposed to
// an exception raised by the metastore itself.
type ClientError struct {
	description        string
	contextDescription string
	cause              error
}

func (err *ClientError) WithContextDescription(description string) *ClientError {
	err.contextDescription = description
	return err
}

func (err *ClientError) Error() string {
	if len(err.contextDescription) > 0 {
		return err.contextDescription + " is " + err.description
	}
	return err.description
}

func (err *ClientError) Unwrap() error {
	return err.cause
}

func NewClientError(description string) *ClientError {
	return &ClientError{
		description: description,
	}
}

// WrapError turns a transport failure into a ClientError with a readable description.
// Metastore exceptions and ClientErrors are returned unchanged. Thrift application
// exceptions, such as an unexpected method name in the reply, become ClientErrors.
func WrapError(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case exception, *ClientError:
		return err
	}

	terr, ok := err.(thrift.TTransportException)
	if ok {
		switch terr.TypeId() {
		case thrift.NOT_OPEN:
			return &ClientError{
				description: "unable to connect to the service: " + terr.Error(),
				cause:       err,
			}
		case thrift.ALREADY_OPEN:
			return &ClientError{
				description: "already connected to the service: " + terr.Error(),
				cause:       err,
			}
		case thrift.TIMED_OUT:
			return &ClientError{
				description: "timed out talking to the service: " + terr.Error(),
				cause:       err,
			}
		case thrift.END_OF_FILE:
			return &ClientError{
				description: "connection closed by the service: " + terr.Error(),
				cause:       err,
			}
		}
	}
	return &ClientError{
		description: err.Error(),
		cause:       err,
	}
}
