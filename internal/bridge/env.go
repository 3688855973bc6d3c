package bridge

import "sessionbridge/internal/managed"

// Env is the managed runtime as seen from a single boundary call.
// *managed.Heap implements it.
type Env interface {
	NewByteArray(n int) (managed.Ref, error)
	SetByteArrayRegion(arr managed.Ref, start int, b []byte) error
	ArrayLength(arr managed.Ref) (int, error)
	BorrowByteArray(arr managed.Ref) (*managed.View, error)

	NewString(s string) (managed.Ref, error)
	BorrowString(str managed.Ref) (*managed.View, error)
	StringValue(str managed.Ref) (string, error)

	NewObjectArray(elems []managed.Ref) (managed.Ref, error)
	ObjectArrayElement(arr managed.Ref, i int) (managed.Ref, error)

	NewObject(class managed.Class, args ...any) (managed.Ref, error)
	Singleton(class managed.Class) (managed.Ref, error)
	CallStatic(class managed.Class, method string, args ...any) (managed.Ref, error)

	ClassOf(obj managed.Ref) (managed.Class, error)
	IsInstanceOf(obj managed.Ref, class managed.Class) bool
	ObjectField(obj managed.Ref, name string) (managed.Ref, error)
	BoolField(obj managed.Ref, name string) (bool, error)
	LongField(obj managed.Ref, name string) (int64, error)

	Delete(refs ...managed.Ref)
}

var _ Env = (*managed.Heap)(nil)

// locals tracks references allocated while building a result so they can be
// dropped if the call fails part way.
type locals struct {
	env  Env
	refs []managed.Ref
}

func (l *locals) keep(r managed.Ref, err error) (managed.Ref, error) {
	if err == nil && !r.IsNull() {
		l.refs = append(l.refs, r)
	}
	return r, err
}

// dropOnError deletes the tracked references when *errp is set.
func (l *locals) dropOnError(errp *error) {
	if *errp != nil {
		l.env.Delete(l.refs...)
		l.refs = nil
	}
}
