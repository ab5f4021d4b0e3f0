package store

import "testing"

func TestTablePutGet(t *testing.T) {
	table, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer table.Close()

	if err := table.Put("k1", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	value, ok, err := table.Get("k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("Get(k1) not found")
	}
	if string(value) != "v1" {
		t.Fatalf("Get(k1) = %q, want %q", value, "v1")
	}
}

func TestTableGetMissingKey(t *testing.T) {
	table, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer table.Close()

	_, ok, err := table.Get("missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("Get(missing) reported found")
	}
}

func TestEncodeDecodeOpRoundTrip(t *testing.T) {
	payload, err := EncodeOp("name", []byte("bob"))
	if err != nil {
		t.Fatalf("EncodeOp: %v", err)
	}

	op, err := DecodeOp(payload)
	if err != nil {
		t.Fatalf("DecodeOp: %v", err)
	}
	if op.Key != "name" || string(op.Value) != "bob" {
		t.Fatalf("DecodeOp = %+v, want Key=name Value=bob", op)
	}
	if op.RequestID == "" {
		t.Fatalf("RequestID was not stamped")
	}
}

func TestTableApply(t *testing.T) {
	table, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer table.Close()

	payload, err := EncodeOp("applied-key", []byte("applied-value"))
	if err != nil {
		t.Fatalf("EncodeOp: %v", err)
	}
	table.Apply(payload)

	value, ok, err := table.Get("applied-key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(value) != "applied-value" {
		t.Fatalf("Get(applied-key) = %q, %v, want applied-value, true", value, ok)
	}
}
