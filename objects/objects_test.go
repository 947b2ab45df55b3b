/*
File    : saga/objects/objects_test.go
*/
package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDisplayForms pins the textual forms say relies on.
func TestDisplayForms(t *testing.T) {
	tests := []struct {
		Object   Object
		Expected string
	}{
		{Object: &Integer{Value: 42}, Expected: "42"},
		{Object: &Integer{Value: -7}, Expected: "-7"},
		{Object: &Float{Value: 2.5}, Expected: "2.5"},
		{Object: &Float{Value: 3}, Expected: "3.0"},
		{Object: &Float{Value: 0.5}, Expected: "0.5"},
		{Object: &Boolean{Value: true}, Expected: "true"},
		{Object: &Boolean{Value: false}, Expected: "false"},
		{Object: &Nil{}, Expected: "nil"},
		{Object: &String{Value: "hello"}, Expected: "hello"},
		{Object: &Range{Start: 1, End: 10}, Expected: "1..10"},
	}

	for _, test := range tests {
		assert.Equal(t, test.Expected, test.Object.ToString())
	}
}

// TestTruthiness pins the truthiness rule: only nil and false are falsy.
func TestTruthiness(t *testing.T) {
	assert.False(t, IsTruthy(&Nil{}))
	assert.False(t, IsTruthy(&Boolean{Value: false}))

	assert.True(t, IsTruthy(&Boolean{Value: true}))
	assert.True(t, IsTruthy(&Integer{Value: 0}))
	assert.True(t, IsTruthy(&Float{Value: 0}))
	assert.True(t, IsTruthy(&String{Value: ""}))
	assert.True(t, IsTruthy(&Range{Start: 0, End: 0}))
}

// TestIsError distinguishes errors from ordinary values.
func TestIsError(t *testing.T) {
	assert.True(t, IsError(&Error{Message: "boom"}))
	assert.False(t, IsError(&Integer{Value: 1}))
	assert.False(t, IsError(nil))
}

// TestTypeTags spot-checks GetType values used in dispatch.
func TestTypeTags(t *testing.T) {
	assert.Equal(t, IntegerType, (&Integer{}).GetType())
	assert.Equal(t, FloatType, (&Float{}).GetType())
	assert.Equal(t, BreakType, (&BreakSignal{}).GetType())
	assert.Equal(t, ContinueType, (&ContinueSignal{}).GetType())
	assert.Equal(t, ReturnType, (&ReturnValue{Value: &Nil{}}).GetType())
}
