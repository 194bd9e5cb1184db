// Package text decodes null-terminated strings out of caller memory.
//
// The encoding convention depends on the caller's platform: Windows callers
// pass wide (UTF-16) strings, everyone else passes UTF-8. The choice is a
// Strategy injected into the Decoder, so both conventions can be exercised on
// any build host:
//
//	dec := text.NewDecoder(text.ForPlatform("windows"))
//	s, err := dec.Decode(mem, ptr)
//
// A Decoder built without a strategy asks the platform query on every call.
//
// A zero reference is a NullReference error, never an empty string; a
// reference to a terminator decodes to "". Malformed sequences decode lossily
// to U+FFFD. The result is always a copy, independent of caller memory.
package text
