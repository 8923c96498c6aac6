package entity

import "errors"

var (
	// ErrNotFound yozuv topilmadi
	ErrNotFound = errors.New("topilmadi")
	// ErrAlreadyExists yozuv allaqachon mavjud
	ErrAlreadyExists = errors.New("allaqachon mavjud")
)

// ResultKind tekshiruv natijasi turi
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultNotFound
	ResultInvalid
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultNotFound:
		return "not_found"
	case ResultInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result validatsiya va qidiruv natijasi: OK(qiymat), NotFound yoki Invalid(sabab).
// Saqlash xatolari alohida error sifatida qaytariladi.
type Result[T any] struct {
	Kind   ResultKind
	Value  T
	Reason string
}

func OK[T any](v T) Result[T] {
	return Result[T]{Kind: ResultOK, Value: v}
}

func NotFound[T any]() Result[T] {
	return Result[T]{Kind: ResultNotFound}
}

func Invalid[T any](reason string) Result[T] {
	return Result[T]{Kind: ResultInvalid, Reason: reason}
}

func (r Result[T]) IsOK() bool { return r.Kind == ResultOK }
