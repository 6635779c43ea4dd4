package parser

// Handler receives the items emitted by a Parser.
type Handler[T any] interface {
	Output(item T)
}

// HandlerFunc adapts a callback to a Handler.
type HandlerFunc[T any] func(item T)

// Output calls f(item).
func (f HandlerFunc[T]) Output(item T) {
	f(item)
}

// Slice is a Handler appending every item to itself.
//
//	var items parser.Slice[Token]
//	p.SetOutputHandler(&items)
type Slice[T any] []T

// Output appends item.
func (s *Slice[T]) Output(item T) {
	*s = append(*s, item)
}
