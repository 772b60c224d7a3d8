package command

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"printer list", []string{"printer", "list"}},
		{`printer rename abc "Kitchen Printer"`, []string{"printer", "rename", "abc", "Kitchen Printer"}},
		{`print p1 'order file.json'`, []string{"print", "p1", "order file.json"}},
		{`render ./order.json --lang ar`, []string{"render", "./order.json", "--lang", "ar"}},
	}

	for _, tc := range cases {
		got := parseCommand(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseCommand(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	e := NewExecutor(nil, nil, nil)

	if res := e.Execute("frobnicate"); res.Success {
		t.Error("expected unknown command to fail")
	}
	if res := e.Execute(""); res.Success {
		t.Error("expected empty command to fail")
	}
}
