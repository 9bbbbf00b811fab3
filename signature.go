package uart

import (
	"fmt"
	"strings"
)

// Device property keys read from the udev database
const (
	PropVendorID     = "ID_VENDOR_ID"
	PropModelID      = "ID_MODEL_ID"
	PropInterfaceNum = "ID_USB_INTERFACE_NUM"
)

// missingField is rendered in place of an absent signature field so an
// incomplete signature can never collide with a table entry.
const missingField = "None"

// ProbeFamily names the debug-probe family a USB signature belongs to
type ProbeFamily string

const (
	FamilyXDS110 ProbeFamily = "XDS110"
	FamilyCP210X ProbeFamily = "CP210X"
)

// Signature identifies one USB function by vendor id, product id and
// interface number.
type Signature struct {
	VendorID  string
	ProductID string
	Interface string
}

// SignatureFromProperties builds a Signature from a udev property map.
// Vendor and product ids are upper-cased, missing keys stay empty.
func SignatureFromProperties(props map[string]string) Signature {
	return Signature{
		VendorID:  strings.ToUpper(props[PropVendorID]),
		ProductID: strings.ToUpper(props[PropModelID]),
		Interface: props[PropInterfaceNum],
	}
}

// Complete reports whether all three fields are known
func (s Signature) Complete() bool {
	return s.VendorID != "" && s.ProductID != "" && s.Interface != ""
}

// String returns the canonical VID_xxxx&PID_xxxx&MI_nn form
func (s Signature) String() string {
	return fmt.Sprintf("VID_%s&PID_%s&MI_%s",
		orMissing(s.VendorID), orMissing(s.ProductID), orMissing(s.Interface))
}

func orMissing(v string) string {
	if v == "" {
		return missingField
	}
	return v
}

// SignatureSet maps canonical signature strings to their probe family
type SignatureSet map[string]ProbeFamily

// Lookup returns the family of a known debug-probe signature. Incomplete
// signatures never match.
func (s SignatureSet) Lookup(sig Signature) (ProbeFamily, bool) {
	if !sig.Complete() {
		return "", false
	}
	family, ok := s[sig.String()]
	return family, ok
}

// Merge returns a new set holding the entries of s and other
func (s SignatureSet) Merge(other SignatureSet) SignatureSet {
	merged := make(SignatureSet, len(s)+len(other))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

func newSignatureSet(family ProbeFamily, ids ...string) SignatureSet {
	set := make(SignatureSet, len(ids))
	for _, id := range ids {
		set[id] = family
	}
	return set
}

// XDS110Signatures returns the USB functions of XDS110 probes that are not
// application UARTs. IDs come from the xds110_ports, xds110_cmsis20 and
// xds110_debug driver INF files shipped with TI Emupack.
func XDS110Signatures() SignatureSet {
	return newSignatureSet(FamilyXDS110,
		// xds110_ports.inf
		"VID_0451&PID_BEF3&MI_03",
		"VID_0451&PID_BEF4&MI_03",
		"VID_1CBE&PID_029E&MI_03",
		"VID_1CBE&PID_02A5&MI_04",
		// xds110_cmsis20.inf
		"VID_1CBE&PID_02A5&MI_00",
		// xds110_debug.inf
		"VID_0451&PID_BEF3&MI_02",
		"VID_0451&PID_BEF4&MI_02",
		"VID_1CBE&PID_029E&MI_02",
		"VID_1CBE&PID_029F&MI_00",
		"VID_1CBE&PID_029F&MI_01",
	)
}

// CP210XSignatures returns the Silicon Labs CP210X functions listed in
// slabvcp.inf. These bridges sit on bench instruments (e.g. BK9171B power
// supplies), not on the target boards.
func CP210XSignatures() SignatureSet {
	return newSignatureSet(FamilyCP210X,
		"VID_10C4&PID_EA60&MI_00",
		"VID_10C4&PID_EA63&MI_00",
		"VID_10C4&PID_EA70&MI_00",
		"VID_10C4&PID_EA70&MI_01",
		"VID_10C4&PID_EA71&MI_00",
		"VID_10C4&PID_EA71&MI_01",
		"VID_10C4&PID_EA71&MI_02",
		"VID_10C4&PID_EA71&MI_03",
		"VID_10C4&PID_EA7A&MI_00",
		"VID_10C4&PID_EA7A&MI_01",
		"VID_10C4&PID_EA7B&MI_00",
		"VID_10C4&PID_EA7B&MI_01",
		"VID_10C4&PID_EA7B&MI_02",
		"VID_10C4&PID_EA7B&MI_03",
	)
}

// DefaultSignatures returns both built-in tables in one set
func DefaultSignatures() SignatureSet {
	return XDS110Signatures().Merge(CP210XSignatures())
}
