package managed

// Ref is a reference to a managed value. The zero Ref is null.
type Ref uint64

// Null is the null reference.
const Null Ref = 0

// IsNull reports whether r is the null reference.
func (r Ref) IsNull() bool { return r == Null }

// Class is a fully qualified managed class name.
type Class string

// FieldKind is the storage kind of an instance field.
type FieldKind uint8

const (
	KindRef FieldKind = iota
	KindBool
	KindLong
)

// Field describes one instance field.
type Field struct {
	Name string
	Kind FieldKind
	// Type restricts KindRef fields to instances of a class. Empty accepts any.
	Type Class
	// Nullable allows a null KindRef field.
	Nullable bool
}

// ClassDef describes a managed class. Instance fields are the super class's
// fields followed by Fields, which is also the canonical constructor's
// parameter order.
type ClassDef struct {
	Name      Class
	Super     Class
	Abstract  bool
	Singleton bool
	Fields    []Field
}

// Factory implements a static method. It runs without the heap lock held.
type Factory func(h *Heap, args ...any) (Ref, error)
