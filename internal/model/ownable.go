package model

// Ownable - ресурс с владельцем. Реализуют Item и Blob.
type Ownable interface {
	OwnerID() int64
}
