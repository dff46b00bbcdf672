package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is. errors.Is matches both the code and the wrapped error.
func (e *Error) Is(target error) bool {
	return e.code != nil && e.code == target
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// Message. the message without the wrapped cause.
func (e *Error) Message() string {
	return e.msg
}

var (
	ErrUsage             = errors.New("usage error")
	ErrLoadFailed        = errors.New("model load failed")
	ErrTranslationFailed = errors.New("translation failed")
	ErrWriteFailed       = errors.New("write failed")
	ErrBadParamInput     = errors.New("given Param is not valid")
)

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}

// StringToFloat64OrDefault. empty and "Autosize"/"Autocalculate" style fields fall back to def.
func StringToFloat64OrDefault(str string, def float64) float64 {
	val, err := StringToFloat64(str)
	if err != nil {
		return def
	}
	return val
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// FormatFloat. shortest representation, with -0 printed as 0.
func FormatFloat(val float64) string {
	if val == 0 {
		return "0"
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func Sum[T constraints.Integer | constraints.Float](arr []T) T {
	var total T
	for _, v := range arr {
		total += v
	}
	return total
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}
