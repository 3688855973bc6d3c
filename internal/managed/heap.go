package managed

import (
	"fmt"
	"sync"
)

// Built-in classes with dedicated constructors.
const (
	ClassObject      Class = "lang.Object"
	ClassString      Class = "lang.String"
	ClassByteArray   Class = "lang.byte[]"
	ClassObjectArray Class = "lang.Object[]"
)

type object struct {
	class  Class
	fields []any
	bytes  []byte
	str    string
	elems  []Ref
}

type classInfo struct {
	def    ClassDef
	fields []Field
	index  map[string]int
}

type factoryKey struct {
	class  Class
	method string
}

// Heap owns managed values.
type Heap struct {
	mu         sync.Mutex
	classes    map[Class]*classInfo
	factories  map[factoryKey]Factory
	singletons map[Class]Ref
	objects    map[Ref]*object
	next       Ref
	borrowed   int
}

// NewHeap returns a heap with the boundary's class catalog defined.
func NewHeap() *Heap {
	h := NewEmptyHeap()
	for _, def := range Catalog() {
		if err := h.Define(def); err != nil {
			panic(fmt.Sprintf("managed: catalog: %v", err))
		}
	}
	h.RegisterFactory(ClassSessionID, "from", sessionIDFrom)
	return h
}

// NewEmptyHeap returns a heap that only knows the built-in classes.
func NewEmptyHeap() *Heap {
	h := &Heap{
		classes:    make(map[Class]*classInfo),
		factories:  make(map[factoryKey]Factory),
		singletons: make(map[Class]Ref),
		objects:    make(map[Ref]*object),
	}
	for _, c := range []Class{ClassObject, ClassString, ClassByteArray, ClassObjectArray} {
		h.classes[c] = &classInfo{def: ClassDef{Name: c, Abstract: true}, index: map[string]int{}}
	}
	return h
}

// Define registers a class. The super class must already be defined.
func (h *Heap) Define(def ClassDef) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.classes[def.Name]; ok {
		return fmt.Errorf("%w: %s already defined", ErrIllegalArgument, def.Name)
	}
	var fields []Field
	if def.Super != "" {
		super, ok := h.classes[def.Super]
		if !ok {
			return fmt.Errorf("%w: super class %s", ErrUnknownClass, def.Super)
		}
		fields = append(fields, super.fields...)
	}
	fields = append(fields, def.Fields...)

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := index[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %s.%s", ErrIllegalArgument, def.Name, f.Name)
		}
		index[f.Name] = i
	}
	h.classes[def.Name] = &classInfo{def: def, fields: fields, index: index}
	return nil
}

// RegisterFactory installs fn as the static method class.method.
func (h *Heap) RegisterFactory(class Class, method string, fn Factory) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.factories[factoryKey{class, method}] = fn
}

// NewByteArray allocates a zero-filled byte array of length n.
func (h *Heap) NewByteArray(n int) (Ref, error) {
	if n < 0 {
		return Null, fmt.Errorf("%w: negative array length %d", ErrIllegalArgument, n)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(&object{class: ClassByteArray, bytes: make([]byte, n)}), nil
}

// SetByteArrayRegion copies b into arr starting at start.
func (h *Heap) SetByteArrayRegion(arr Ref, start int, b []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(arr, ClassByteArray)
	if err != nil {
		return err
	}
	if start < 0 || start+len(b) > len(o.bytes) {
		return fmt.Errorf("%w: region [%d,%d) of %d", ErrIndexOutOfBounds, start, start+len(b), len(o.bytes))
	}
	copy(o.bytes[start:], b)
	return nil
}

// ArrayLength returns the length of a byte or object array.
func (h *Heap) ArrayLength(arr Ref) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(arr, "")
	if err != nil {
		return 0, err
	}
	switch o.class {
	case ClassByteArray:
		return len(o.bytes), nil
	case ClassObjectArray:
		return len(o.elems), nil
	default:
		return 0, fmt.Errorf("%w: %s is not an array", ErrWrongClass, o.class)
	}
}

// BorrowByteArray returns a view of arr's storage. The view must be
// released; the bytes must not be retained after Release.
func (h *Heap) BorrowByteArray(arr Ref) (*View, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(arr, ClassByteArray)
	if err != nil {
		return nil, err
	}
	return h.borrow(o.bytes), nil
}

// NewString allocates a string.
func (h *Heap) NewString(s string) (Ref, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(&object{class: ClassString, str: s}), nil
}

// BorrowString returns a view of the UTF-8 bytes of str. The view must be
// released.
func (h *Heap) BorrowString(str Ref) (*View, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(str, ClassString)
	if err != nil {
		return nil, err
	}
	return h.borrow([]byte(o.str)), nil
}

// StringValue returns the contents of str.
func (h *Heap) StringValue(str Ref) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(str, ClassString)
	if err != nil {
		return "", err
	}
	return o.str, nil
}

// NewObjectArray allocates an array holding elems.
func (h *Heap) NewObjectArray(elems []Ref) (Ref, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, e := range elems {
		if e.IsNull() {
			continue
		}
		if _, err := h.lookup(e, ""); err != nil {
			return Null, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return h.alloc(&object{class: ClassObjectArray, elems: append([]Ref(nil), elems...)}), nil
}

// ObjectArrayElement returns arr[i].
func (h *Heap) ObjectArrayElement(arr Ref, i int) (Ref, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(arr, ClassObjectArray)
	if err != nil {
		return Null, err
	}
	if i < 0 || i >= len(o.elems) {
		return Null, fmt.Errorf("%w: index %d of %d", ErrIndexOutOfBounds, i, len(o.elems))
	}
	return o.elems[i], nil
}

// NewObject runs the canonical constructor of class with one argument per
// instance field: a Ref for KindRef, a bool for KindBool, an int64 for
// KindLong.
func (h *Heap) NewObject(class Class, args ...any) (Ref, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ci, ok := h.classes[class]
	if !ok {
		return Null, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	if ci.def.Abstract || ci.def.Singleton {
		return Null, fmt.Errorf("%w: %s", ErrAbstractClass, class)
	}
	if len(args) != len(ci.fields) {
		return Null, fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, class, len(ci.fields), len(args))
	}
	fields := make([]any, len(args))
	for i, f := range ci.fields {
		v, err := h.checkArg(f, args[i])
		if err != nil {
			return Null, fmt.Errorf("%s.%s: %w", class, f.Name, err)
		}
		fields[i] = v
	}
	return h.alloc(&object{class: class, fields: fields}), nil
}

// Singleton returns the single instance of a singleton class. Its fields
// hold zero values.
func (h *Heap) Singleton(class Class) (Ref, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.singletons[class]; ok {
		return r, nil
	}
	ci, ok := h.classes[class]
	if !ok {
		return Null, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	if !ci.def.Singleton {
		return Null, fmt.Errorf("%w: %s is not a singleton", ErrWrongClass, class)
	}
	fields := make([]any, len(ci.fields))
	for i, f := range ci.fields {
		fields[i] = zeroValue(f.Kind)
	}
	r := h.alloc(&object{class: class, fields: fields})
	h.singletons[class] = r
	return r, nil
}

// CallStatic invokes the static method class.method.
func (h *Heap) CallStatic(class Class, method string, args ...any) (Ref, error) {
	h.mu.Lock()
	fn, ok := h.factories[factoryKey{class, method}]
	h.mu.Unlock()
	if !ok {
		return Null, fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, class, method)
	}
	return fn(h, args...)
}

// ClassOf returns the runtime class of obj.
func (h *Heap) ClassOf(obj Ref) (Class, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(obj, "")
	if err != nil {
		return "", err
	}
	return o.class, nil
}

// IsInstanceOf reports whether obj's class is class or a subclass of it.
// A null obj is an instance of nothing.
func (h *Heap) IsInstanceOf(obj Ref, class Class) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(obj, "")
	if err != nil {
		return false
	}
	return h.subclassOf(o.class, class)
}

// ObjectField reads a KindRef field.
func (h *Heap) ObjectField(obj Ref, name string) (Ref, error) {
	v, err := h.field(obj, name, KindRef)
	if err != nil {
		return Null, err
	}
	return v.(Ref), nil
}

// BoolField reads a KindBool field.
func (h *Heap) BoolField(obj Ref, name string) (bool, error) {
	v, err := h.field(obj, name, KindBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// LongField reads a KindLong field.
func (h *Heap) LongField(obj Ref, name string) (int64, error) {
	v, err := h.field(obj, name, KindLong)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// Delete drops references the caller no longer needs. Singletons survive.
func (h *Heap) Delete(refs ...Ref) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range refs {
		o, ok := h.objects[r]
		if !ok {
			continue
		}
		if h.singletons[o.class] == r {
			continue
		}
		delete(h.objects, r)
	}
}

// Mark returns the current allocation position for a later FreeSince.
func (h *Heap) Mark() Ref {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.next
}

// FreeSince drops every value allocated after mark unless it is reachable
// from keep. Singletons survive.
func (h *Heap) FreeSince(mark Ref, keep ...Ref) {
	h.mu.Lock()
	defer h.mu.Unlock()

	reachable := make(map[Ref]bool)
	stack := append([]Ref(nil), keep...)
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.IsNull() || reachable[r] {
			continue
		}
		o, ok := h.objects[r]
		if !ok {
			continue
		}
		reachable[r] = true
		for _, f := range o.fields {
			if child, ok := f.(Ref); ok {
				stack = append(stack, child)
			}
		}
		stack = append(stack, o.elems...)
	}

	for r, o := range h.objects {
		if r <= mark || reachable[r] || h.singletons[o.class] == r {
			continue
		}
		delete(h.objects, r)
	}
}

// Outstanding returns the number of borrowed views not yet released.
func (h *Heap) Outstanding() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.borrowed
}

// Len returns the number of live values on the heap.
func (h *Heap) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}

func (h *Heap) alloc(o *object) Ref {
	h.next++
	h.objects[h.next] = o
	return h.next
}

// lookup resolves r, optionally requiring an exact class. Caller holds h.mu.
func (h *Heap) lookup(r Ref, class Class) (*object, error) {
	if r.IsNull() {
		return nil, ErrNullReference
	}
	o, ok := h.objects[r]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidReference, r)
	}
	if class != "" && o.class != class {
		return nil, fmt.Errorf("%w: have %s, want %s", ErrWrongClass, o.class, class)
	}
	return o, nil
}

func (h *Heap) borrow(b []byte) *View {
	h.borrowed++
	return &View{data: b, release: func() {
		h.mu.Lock()
		h.borrowed--
		h.mu.Unlock()
	}}
}

func (h *Heap) subclassOf(c, want Class) bool {
	if want == ClassObject {
		return true
	}
	for c != "" {
		if c == want {
			return true
		}
		ci, ok := h.classes[c]
		if !ok {
			return false
		}
		c = ci.def.Super
	}
	return false
}

func (h *Heap) checkArg(f Field, arg any) (any, error) {
	switch f.Kind {
	case KindBool:
		v, ok := arg.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: want bool, got %T", ErrIllegalArgument, arg)
		}
		return v, nil
	case KindLong:
		v, ok := arg.(int64)
		if !ok {
			return nil, fmt.Errorf("%w: want int64, got %T", ErrIllegalArgument, arg)
		}
		return v, nil
	default:
		r, ok := arg.(Ref)
		if !ok {
			return nil, fmt.Errorf("%w: want Ref, got %T", ErrIllegalArgument, arg)
		}
		if r.IsNull() {
			if !f.Nullable {
				return nil, ErrNullReference
			}
			return r, nil
		}
		o, err := h.lookup(r, "")
		if err != nil {
			return nil, err
		}
		if f.Type != "" && !h.subclassOf(o.class, f.Type) {
			return nil, fmt.Errorf("%w: have %s, want %s", ErrWrongClass, o.class, f.Type)
		}
		return r, nil
	}
}

func (h *Heap) field(obj Ref, name string, kind FieldKind) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.lookup(obj, "")
	if err != nil {
		return nil, err
	}
	ci := h.classes[o.class]
	i, ok := ci.index[name]
	if !ok || ci.fields[i].Kind != kind {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchField, o.class, name)
	}
	return o.fields[i], nil
}

func zeroValue(k FieldKind) any {
	switch k {
	case KindBool:
		return false
	case KindLong:
		return int64(0)
	default:
		return Null
	}
}

// View is a borrowed window into managed storage.
type View struct {
	data    []byte
	once    sync.Once
	release func()
}

// Bytes returns the viewed storage. It is only valid until Release.
func (v *View) Bytes() []byte { return v.data }

// Len returns the number of viewed bytes.
func (v *View) Len() int { return len(v.data) }

// Release returns the view to the heap. Repeated calls are no-ops.
func (v *View) Release() {
	v.once.Do(func() {
		v.data = nil
		v.release()
	})
}
