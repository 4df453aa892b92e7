package vscene

// Object is one drawing primitive in a Scene: a Rectangle, Circle, Line
// or Text. The set is closed; other packages switch on the concrete type.
type Object interface {
	isObject()
}

func (Rectangle) isObject() {}
func (Circle) isObject()    {}
func (Line) isObject()      {}
func (Text) isObject()      {}

// Scene is an ordered list of objects. Insertion order is paint order:
// later objects paint over earlier ones. Text is always composited above
// every shape regardless of its position in the list.
//
// The zero value is an empty scene ready to use.
type Scene struct {
	objects []Object
}

// NewScene creates a scene holding objs in order.
func NewScene(objs ...Object) Scene {
	var s Scene
	s.Add(objs...)
	return s
}

// Add appends objects to the end of the paint order. Nil entries,
// including nil object pointers, are ignored.
func (s *Scene) Add(objs ...Object) {
	for _, o := range objs {
		if !isNil(o) {
			s.objects = append(s.objects, o)
		}
	}
}

func isNil(o Object) bool {
	switch p := o.(type) {
	case nil:
		return true
	case *Rectangle:
		return p == nil
	case *Circle:
		return p == nil
	case *Line:
		return p == nil
	case *Text:
		return p == nil
	}
	return false
}

// Set replaces the whole object list.
func (s *Scene) Set(objs ...Object) {
	s.objects = s.objects[:0]
	s.Add(objs...)
}

// Clear removes every object.
func (s *Scene) Clear() {
	clear(s.objects)
	s.objects = s.objects[:0]
}

// Len returns the number of objects.
func (s Scene) Len() int {
	return len(s.objects)
}

// Objects returns the objects in paint order. The returned slice is a copy.
func (s Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Clone returns an independent copy of the scene.
func (s Scene) Clone() Scene {
	return Scene{objects: s.Objects()}
}
