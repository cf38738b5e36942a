package document

type Document interface {
	GetID() int64
}
