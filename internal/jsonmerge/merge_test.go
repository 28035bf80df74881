package jsonmerge

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode(%s) error = %v", s, err)
	}
	return v
}

func TestMerge(t *testing.T) {
	cases := []struct {
		name    string
		base    string
		overlay string
		want    string
	}{
		{
			name:    "nested objects merge",
			base:    `{"a":{"x":1,"y":2},"keep":true}`,
			overlay: `{"a":{"y":3,"z":4}}`,
			want:    `{"a":{"x":1,"y":3,"z":4},"keep":true}`,
		},
		{
			name:    "arrays replace",
			base:    `{"rules":[1,2,3]}`,
			overlay: `{"rules":[9]}`,
			want:    `{"rules":[9]}`,
		},
		{
			name:    "scalar replaces object",
			base:    `{"a":{"x":1}}`,
			overlay: `{"a":"flat"}`,
			want:    `{"a":"flat"}`,
		},
		{
			name:    "object replaces scalar",
			base:    `{"a":1}`,
			overlay: `{"a":{"x":1}}`,
			want:    `{"a":{"x":1}}`,
		},
		{
			name:    "null replaces",
			base:    `{"a":{"x":1}}`,
			overlay: `{"a":null}`,
			want:    `{"a":null}`,
		},
		{
			name:    "non-object overlay at root",
			base:    `{"a":1}`,
			overlay: `[1]`,
			want:    `[1]`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(mustDecode(t, tc.base), mustDecode(t, tc.overlay))
			want := mustDecode(t, tc.want)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Merge() = %v, want %v", got, want)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := mustDecode(t, `{"a":{"x":1}}`)
	overlay := mustDecode(t, `{"a":{"y":2}}`)
	Merge(base, overlay)

	if !reflect.DeepEqual(base, mustDecode(t, `{"a":{"x":1}}`)) {
		t.Fatalf("base modified: %v", base)
	}
}

func TestDecode_KeepsNumbers(t *testing.T) {
	v := mustDecode(t, `{"timeout": 30000, "ratio": 1.50}`)
	obj := v.(map[string]any)
	if obj["timeout"] != json.Number("30000") {
		t.Fatalf("timeout = %#v, want json.Number(30000)", obj["timeout"])
	}
	out, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"ratio": 1.50`) {
		t.Fatalf("Encode() lost number formatting: %s", out)
	}
}

func TestDecodeObject_RejectsNonObject(t *testing.T) {
	if _, err := DecodeObject([]byte(`["a"]`)); err == nil {
		t.Fatal("DecodeObject([...]) error = nil, want error")
	}
	if _, err := DecodeObject([]byte(`{} {}`)); err == nil {
		t.Fatal("DecodeObject(two documents) error = nil, want error")
	}
}

func TestEncode(t *testing.T) {
	out, err := Encode(map[string]any{"url": "https://x.dev/mcp?a=1&b=2"})
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"url\": \"https://x.dev/mcp?a=1&b=2\"\n}\n"
	if out != want {
		t.Fatalf("Encode() = %q, want %q", out, want)
	}
}
