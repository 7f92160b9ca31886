package launcher

import "testing"

func TestVolumeArg(t *testing.T) {
	v := Volume{Src: "/mySrc", Dst: "/myDst", ReadWrite: true}
	if got := v.Arg(); got != "/mySrc:/myDst:rw" {
		t.Fatalf("Arg() = %q, want /mySrc:/myDst:rw", got)
	}

	v.ReadWrite = false
	if got := v.Arg(); got != "/mySrc:/myDst:ro" {
		t.Fatalf("Arg() = %q, want /mySrc:/myDst:ro", got)
	}

	v.Options = []string{"Z"}
	if got := v.Arg(); got != "/mySrc:/myDst:ro,Z" {
		t.Fatalf("Arg() = %q, want /mySrc:/myDst:ro,Z", got)
	}
}

func TestParseRelabel(t *testing.T) {
	tests := []struct {
		input   string
		want    Relabel
		wantErr bool
	}{
		{input: "", want: RelabelNone},
		{input: "z", want: RelabelShared},
		{input: "shared", want: RelabelShared},
		{input: "Z", want: RelabelUnshared},
		{input: "unshared", want: RelabelUnshared},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRelabel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseRelabel(%q) expected an error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRelabel(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseRelabel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRelabelMountOptions(t *testing.T) {
	if got := RelabelNone.MountOptions(); got != nil {
		t.Fatalf("RelabelNone options = %v, want nil", got)
	}
	if got := RelabelShared.MountOptions(); len(got) != 1 || got[0] != "z" {
		t.Fatalf("RelabelShared options = %v, want [z]", got)
	}
	if got := RelabelUnshared.MountOptions(); len(got) != 1 || got[0] != "Z" {
		t.Fatalf("RelabelUnshared options = %v, want [Z]", got)
	}
}
