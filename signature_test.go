package uart

import "testing"

func TestSignatureString(t *testing.T) {
	tests := []struct {
		name     string
		sig      Signature
		expected string
		complete bool
	}{
		{"complete", Signature{"0451", "BEF3", "03"}, "VID_0451&PID_BEF3&MI_03", true},
		{"missing interface", Signature{"0451", "BEF3", ""}, "VID_0451&PID_BEF3&MI_None", false},
		{"empty", Signature{}, "VID_None&PID_None&MI_None", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.String(); got != tt.expected {
				t.Errorf("String() = %s, expected %s", got, tt.expected)
			}
			if got := tt.sig.Complete(); got != tt.complete {
				t.Errorf("Complete() = %v, expected %v", got, tt.complete)
			}
		})
	}
}

func TestSignatureFromProperties(t *testing.T) {
	sig := SignatureFromProperties(map[string]string{
		PropVendorID:     "1cbe",
		PropModelID:      "02a5",
		PropInterfaceNum: "04",
		"ID_SERIAL":      "Texas_Instruments_XDS110",
	})

	expected := Signature{VendorID: "1CBE", ProductID: "02A5", Interface: "04"}
	if sig != expected {
		t.Errorf("SignatureFromProperties() = %+v, expected %+v", sig, expected)
	}
}

func TestSignatureTables(t *testing.T) {
	if n := len(XDS110Signatures()); n != 10 {
		t.Errorf("Expected 10 XDS110 signatures, got %d", n)
	}
	if n := len(CP210XSignatures()); n != 14 {
		t.Errorf("Expected 14 CP210X signatures, got %d", n)
	}
	if n := len(DefaultSignatures()); n != 24 {
		t.Errorf("Expected 24 signatures in total, got %d", n)
	}

	for id, family := range XDS110Signatures() {
		if family != FamilyXDS110 {
			t.Errorf("%s: expected family %s, got %s", id, FamilyXDS110, family)
		}
	}
	for id, family := range CP210XSignatures() {
		if family != FamilyCP210X {
			t.Errorf("%s: expected family %s, got %s", id, FamilyCP210X, family)
		}
	}
}

func TestSignatureLookup(t *testing.T) {
	set := DefaultSignatures()

	tests := []struct {
		name     string
		sig      Signature
		family   ProbeFamily
		expected bool
	}{
		{"xds110 debug port", Signature{"0451", "BEF3", "02"}, FamilyXDS110, true},
		{"xds110 cmsis-dap", Signature{"1CBE", "02A5", "00"}, FamilyXDS110, true},
		{"cp2102", Signature{"10C4", "EA60", "00"}, FamilyCP210X, true},
		{"xds110 application uart", Signature{"0451", "BEF3", "00"}, "", false},
		{"lower case ids do not match", Signature{"10c4", "ea60", "00"}, "", false},
		{"incomplete", Signature{"10C4", "EA60", ""}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			family, ok := set.Lookup(tt.sig)
			if ok != tt.expected || family != tt.family {
				t.Errorf("Lookup(%s) = (%s, %v), expected (%s, %v)", tt.sig, family, ok, tt.family, tt.expected)
			}
		})
	}
}

func TestSignatureSetMergeDoesNotMutate(t *testing.T) {
	xds := XDS110Signatures()
	merged := xds.Merge(CP210XSignatures())

	if len(xds) != 10 {
		t.Errorf("Merge mutated the receiver: %d entries", len(xds))
	}
	if len(merged) != 24 {
		t.Errorf("Expected 24 merged entries, got %d", len(merged))
	}
}
