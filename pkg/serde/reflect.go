//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package serde

import (
	"reflect"
)

var (
	uint128Type = reflect.TypeOf(Uint128{})
	int128Type  = reflect.TypeOf(Int128{})
	byteType    = reflect.TypeOf(byte(0))
)

// Struct fields tagged `wire:"-"` are skipped. Blank fields (named `_`) are
// padding: they occupy their fixed size, are skipped on decode and zero
// filled on encode.
const tagName = "wire"

func decodeReflect(d *Decoder, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Errorf("serde: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(d, rv.Elem())
}

func decodeValue(d *Decoder, v reflect.Value) error {
	if v.CanAddr() && v.Addr().CanInterface() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalWire(d)
		}
	}
	switch v.Type() {
	case uint128Type, int128Type:
		x, err := d.Uint128()
		if err != nil {
			return err
		}
		v.Field(0).SetUint(x.Lo)
		v.Field(1).SetUint(x.Hi)
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := d.Bool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int8:
		x, err := d.Int8()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Int16:
		x, err := d.Int16()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Int32:
		x, err := d.Int32()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Int64:
		x, err := d.Int64()
		if err != nil {
			return err
		}
		v.SetInt(x)
	case reflect.Uint8:
		x, err := d.Uint8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint16:
		x, err := d.Uint16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint32:
		x, err := d.Uint32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint64:
		x, err := d.Uint64()
		if err != nil {
			return err
		}
		v.SetUint(x)
	case reflect.String:
		s, err := d.String()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := d.Bytes()
			if err != nil {
				return err
			}
			v.SetBytes(b)
			return nil
		}
		n, err := d.SeqLen()
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(v.Type(), n, n)
		for i := 0; i < n; i++ {
			if err = decodeValue(d, s.Index(i)); err != nil {
				return err
			}
		}
		v.Set(s)
	case reflect.Array:
		if v.Type().Elem() == byteType {
			b, err := d.FixedBytes(v.Len())
			if err != nil {
				return err
			}
			reflect.Copy(v, reflect.ValueOf(b))
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := decodeValue(d, v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Tag.Get(tagName) == "-" {
				continue
			}
			if f.Name == "_" {
				sz, ok := fixedSize(f.Type)
				if !ok {
					return Errorf("serde: padding field in %s has no fixed size", t)
				}
				if err := d.Skip(sz); err != nil {
					return err
				}
				continue
			}
			if !f.IsExported() {
				return Errorf("serde: cannot decode unexported field %s.%s", t, f.Name)
			}
			if err := decodeValue(d, v.Field(i)); err != nil {
				return err
			}
		}
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return decodeValue(d, v.Elem())
	case reflect.Float32, reflect.Float64:
		return Errorf("serde: floating point type %s is not supported", v.Type())
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return Errorf("serde: %s has no fixed wire width", v.Type())
	default:
		return Errorf("serde: unsupported type %s", v.Type())
	}
	return nil
}

func encodeReflect(e *Encoder, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return Errorf("serde: cannot encode nil")
	}
	return encodeValue(e, rv)
}

func encodeValue(e *Encoder, v reflect.Value) error {
	if v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return m.MarshalWire(e)
		}
		if v.CanAddr() {
			if m, ok := v.Addr().Interface().(Marshaler); ok {
				return m.MarshalWire(e)
			}
		}
	}
	switch v.Type() {
	case uint128Type, int128Type:
		e.PutUint64(v.Field(0).Uint())
		e.PutUint64(v.Field(1).Uint())
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		e.PutBool(v.Bool())
	case reflect.Int8:
		e.PutInt8(int8(v.Int()))
	case reflect.Int16:
		e.PutInt16(int16(v.Int()))
	case reflect.Int32:
		e.PutInt32(int32(v.Int()))
	case reflect.Int64:
		e.PutInt64(v.Int())
	case reflect.Uint8:
		e.PutUint8(uint8(v.Uint()))
	case reflect.Uint16:
		e.PutUint16(uint16(v.Uint()))
	case reflect.Uint32:
		e.PutUint32(uint32(v.Uint()))
	case reflect.Uint64:
		e.PutUint64(v.Uint())
	case reflect.String:
		return e.PutString(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.PutBytes(v.Bytes())
		}
		if err := e.PutSeqLen(v.Len()); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(e, v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(e, v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Tag.Get(tagName) == "-" {
				continue
			}
			if f.Name == "_" {
				sz, ok := fixedSize(f.Type)
				if !ok {
					return Errorf("serde: padding field in %s has no fixed size", t)
				}
				e.PutZero(sz)
				continue
			}
			if !f.IsExported() {
				return Errorf("serde: cannot encode unexported field %s.%s", t, f.Name)
			}
			if err := encodeValue(e, v.Field(i)); err != nil {
				return err
			}
		}
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return Errorf("serde: cannot encode nil %s", v.Type())
		}
		return encodeValue(e, v.Elem())
	case reflect.Float32, reflect.Float64:
		return Errorf("serde: floating point type %s is not supported", v.Type())
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return Errorf("serde: %s has no fixed wire width", v.Type())
	default:
		return Errorf("serde: unsupported type %s", v.Type())
	}
	return nil
}

// fixedSize returns the wire size of types whose encoding has no prefix.
func fixedSize(t reflect.Type) (int, bool) {
	if t == uint128Type || t == int128Type {
		return 16, true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1, true
	case reflect.Int16, reflect.Uint16:
		return 2, true
	case reflect.Int32, reflect.Uint32:
		return 4, true
	case reflect.Int64, reflect.Uint64:
		return 8, true
	case reflect.Array:
		sz, ok := fixedSize(t.Elem())
		return sz * t.Len(), ok
	case reflect.Struct:
		total := 0
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Tag.Get(tagName) == "-" {
				continue
			}
			sz, ok := fixedSize(f.Type)
			if !ok {
				return 0, false
			}
			total += sz
		}
		return total, true
	}
	return 0, false
}
