package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream: сеть, не-2xx ответ, код ошибки API.
	ErrUpstream = errors.New("upstream failure")
	// ErrMalformed: ответ не прошёл валидацию схемы.
	ErrMalformed = errors.New("malformed payload")
	// ErrInsufficientData: мало свечей для индикатора, это не ошибка, а "нет сигнала".
	ErrInsufficientData = errors.New("insufficient data")
	ErrNotFound         = errors.New("not found")
)

// FetchError: типизированная ошибка любого внешнего запроса.
type FetchError struct {
	Source string // binance, bybit, p2p, quest:<feed>
	Op     string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func NewFetchError(source, op string, err error) *FetchError {
	return &FetchError{Source: source, Op: op, Err: err}
}
