package report

import (
	"strings"

	"github.com/raven-betanet/elfhdr/internal/elfheader"
)

// Document is the machine-readable report: display strings next to raw values
type Document struct {
	File           string             `json:"file" yaml:"file"`
	Layout         string             `json:"layout,omitempty" yaml:"layout,omitempty"`
	Identification IdentificationInfo `json:"identification" yaml:"identification"`
	Header         *HeaderInfo        `json:"header,omitempty" yaml:"header,omitempty"`
	HeaderError    string             `json:"header_error,omitempty" yaml:"header_error,omitempty"`
	Fields         []elfheader.Field  `json:"fields" yaml:"fields"`
}

// IdentificationInfo describes the identification block
type IdentificationInfo struct {
	Magic        string `json:"magic" yaml:"magic"`
	Class        string `json:"class" yaml:"class"`
	ClassValue   uint8  `json:"class_value" yaml:"class_value"`
	Data         string `json:"data" yaml:"data"`
	DataValue    uint8  `json:"data_value" yaml:"data_value"`
	Version      string `json:"version" yaml:"version"`
	VersionValue uint8  `json:"version_value" yaml:"version_value"`
	OSABI        string `json:"osabi" yaml:"osabi"`
	OSABIValue   uint8  `json:"osabi_value" yaml:"osabi_value"`
	ABIVersion   uint8  `json:"abi_version" yaml:"abi_version"`
}

// HeaderInfo describes the class-dependent header
type HeaderInfo struct {
	elfheader.Header `yaml:",inline"`

	TypeName    string `json:"type_name" yaml:"type_name"`
	MachineName string `json:"machine_name" yaml:"machine_name"`
	EntryPoint  string `json:"entry_point" yaml:"entry_point"`
}

// NewDocument builds the document for v. A header decode error is recorded in
// the document and also returned.
func NewDocument(name string, v *elfheader.View, opts elfheader.RenderOptions) (*Document, error) {
	id := v.Identification()
	fields, ferr := v.Fields(opts)
	for i := range fields {
		fields[i].Value = strings.TrimSpace(fields[i].Value)
	}

	doc := &Document{
		File:   name,
		Layout: v.LayoutName(),
		Identification: IdentificationInfo{
			Magic:        strings.TrimSpace(id.MagicString()),
			Class:        id.Class.String(),
			ClassValue:   uint8(id.Class),
			Data:         id.Data.String(),
			DataValue:    uint8(id.Data),
			Version:      id.Version.String(),
			VersionValue: uint8(id.Version),
			OSABI:        id.OSABI.String(),
			OSABIValue:   uint8(id.OSABI),
			ABIVersion:   id.ABIVersion,
		},
		Fields: fields,
	}

	h, err := v.Header()
	if err != nil {
		doc.HeaderError = err.Error()
		return doc, ferr
	}
	doc.Header = &HeaderInfo{
		TypeName:    h.Type.String(),
		MachineName: h.Machine.String(),
		EntryPoint:  elfheader.FormatAddress(id.Class, h.Entry, opts.PadAddresses),
		Header:      h,
	}
	return doc, ferr
}
