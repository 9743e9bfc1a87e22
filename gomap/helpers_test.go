package gomap

import (
	"reflect"

	"github.com/signadot/refl/parse"
)

func reflectType[T any]() reflect.Type { return reflect.TypeFor[T]() }

func reflectValue(p any) reflect.Value { return reflect.ValueOf(p).Elem() }

func parseComments() parse.ParseOption { return parse.ParseComments(true) }
