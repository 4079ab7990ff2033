package main

import (
	"reflect"

	"github.com/BertoldVdb/hexview/hexdump"
	"github.com/alecthomas/kong"
)

// offsetMapper decodes decimal or 0x-prefixed offsets into a
// hexdump.OptionalOffset, marking it as set.
type offsetMapper struct{}

func (offsetMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("offset", &value)
	if err != nil {
		return err
	}
	v, err := hexdump.ParseOffset(value)
	if err != nil {
		return err
	}
	target.Set(reflect.ValueOf(hexdump.Offset(v)))
	return nil
}
