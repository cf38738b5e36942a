package document

// CounterDocument holds the last assigned numeric id for one collection.
// The document _id is the collection name.
type CounterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
