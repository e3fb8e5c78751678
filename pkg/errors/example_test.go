// Package errors provides examples of structured error handling in sparsetable.
package errors_test

import (
	"fmt"
	"strconv"

	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

// Example demonstrates basic error creation with details.
func Example() {
	err := errors.New(errors.ErrorTypeValidation, "row index must not be negative").
		WithDetail("row", -3)

	fmt.Println(err.Error())

	// Output:
	// validation: row index must not be negative
}

// ExampleConversion shows the error produced by a failed coercion.
func ExampleConversion() {
	_, cause := strconv.ParseFloat("abc", 64)
	err := errors.Conversion("abc", "INTEGER", cause)

	fmt.Println(errors.IsConversion(err))
	fmt.Println(err.Details["target"])

	// Output:
	// true
	// INTEGER
}

// ExampleWrap shows how wrapping keeps the outer type.
func ExampleWrap() {
	inner := errors.Conversion("x", "FLOAT", nil)
	err := errors.Wrap(inner, errors.ErrorTypeInternal, "insert failed")

	fmt.Println(errors.IsType(err, errors.ErrorTypeInternal))
	fmt.Println(err)

	// Output:
	// true
	// internal: insert failed: conversion: cannot convert string to FLOAT
}
