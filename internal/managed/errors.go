package managed

import "errors"

var (
	ErrNullReference    = errors.New("managed: null reference")
	ErrInvalidReference = errors.New("managed: invalid reference")
	ErrUnknownClass     = errors.New("managed: unknown class")
	ErrWrongClass       = errors.New("managed: wrong class")
	ErrAbstractClass    = errors.New("managed: class cannot be instantiated")
	ErrNoSuchField      = errors.New("managed: no such field")
	ErrNoSuchMethod     = errors.New("managed: no such static method")
	ErrArgumentCount    = errors.New("managed: wrong argument count")
	ErrIndexOutOfBounds = errors.New("managed: index out of bounds")
	ErrIllegalArgument  = errors.New("managed: illegal argument")
)
