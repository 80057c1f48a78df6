package ports

import "context"

// RawDescriptor is one unparsed catalogue record as supplied by a
// descriptor source. Shape validation happens in domain/score.Parse.
type RawDescriptor map[string]interface{}

// DescriptorSource supplies the full enumeration of raw descriptor records
// the catalogue is built from. Enumeration may block (files, a database)
// and may fail transiently; it is only ever called off the request path.
type DescriptorSource interface {
	Enumerate(ctx context.Context) ([]RawDescriptor, error)
}
