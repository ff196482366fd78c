// Package code provides the registry of API status codes. Every code is
// registered once at init time; duplicate registration is a programming
// error and panics.
package code

import "fmt"

// Code is a registered status code with an optional payload.
type Code struct {
	code    int
	status  bool
	msg     string
	data    interface{}
	details []string

	haveData    bool
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers a failure code.
func NewError(code int, msg string) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("status code %d already registered", code))
	}
	codes[code] = msg
	return &Code{code: code, status: false, msg: msg}
}

// NewSuccess registers a success code.
func NewSuccess(code int, msg string) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("status code %d already registered", code))
	}
	codes[code] = msg
	return &Code{code: code, status: true, msg: msg}
}

// Error implements the error interface so a *Code can travel through
// normal error returns.
func (e *Code) Error() string {
	return e.msg
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.msg
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// Clone returns a payload-free copy so registered codes stay immutable.
func (e *Code) Clone() *Code {
	return &Code{code: e.code, status: e.status, msg: e.msg}
}

// WithData returns a copy of the code carrying a response payload.
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.data = data
	c.haveData = true
	return c
}

// WithDetails returns a copy of the code carrying detail strings.
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = details
	c.haveDetails = true
	return c
}
