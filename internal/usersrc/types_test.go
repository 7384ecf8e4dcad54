package usersrc

import "testing"

func TestBinding(t *testing.T) {
	tests := []struct {
		b         Binding
		name      string
		isMapping bool
		shell     string
	}{
		{BindingEnv, "env", true, ""},
		{BindingAlias, "alias", true, ""},
		{BindingBashCode, "bashCode", false, "bash"},
		{BindingCmdCode, "cmdCode", false, "cmd"},
		{Binding(9), "unknown", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.b.IsMapping(); got != tt.isMapping {
				t.Errorf("IsMapping() = %v, want %v", got, tt.isMapping)
			}
			if got := tt.b.Shell(); got != tt.shell {
				t.Errorf("Shell() = %q, want %q", got, tt.shell)
			}
		})
	}
}

func TestSource_SettersKeepEmptyDefined(t *testing.T) {
	var src Source
	for _, b := range Bindings {
		if src.Defined(b) {
			t.Errorf("zero Source should not define %v", b)
		}
	}

	src.SetMapping(BindingAlias, nil)
	src.SetSequence(BindingCmdCode, nil)

	if !src.Defined(BindingAlias) || src.Len(BindingAlias) != 0 {
		t.Error("SetMapping(nil) should define an empty alias binding")
	}
	if !src.Defined(BindingCmdCode) || src.Len(BindingCmdCode) != 0 {
		t.Error("SetSequence(nil) should define an empty cmdCode binding")
	}
	if src.Defined(BindingEnv) || src.Defined(BindingBashCode) {
		t.Error("other bindings should stay undefined")
	}
}

func TestMapping_Lookup(t *testing.T) {
	m := Mapping{{Name: "A", Value: "1"}, {Name: "B", Value: ""}}

	if v, ok := m.Lookup("B"); !ok || v != "" {
		t.Errorf("Lookup(B) = %q, %v", v, ok)
	}
	if _, ok := m.Lookup("C"); ok {
		t.Error("Lookup(C) should miss")
	}
}
