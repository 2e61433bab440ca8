// Package marshal layers record framing on the bytekit cursor primitives.
//
// Three levels are offered, from explicit to generic:
//
//   - Marshallable: a type encodes itself against a Bytes cursor.
//     WriteLength16/ReadLength16 add a 16-bit length prefix around a
//     nested record, capped at 65535 bytes.
//   - Codec: a reflection-driven encoder that walks a struct's exported
//     fields with a cached per-type plan, delegating to the stop-bit,
//     UTF-8 and raw primitives.
//   - Registry: an explicit method-dispatch table mapping method names to
//     message ids, for call-style wire protocols. Writing an unregistered
//     method is logged and dropped, never fatal; reading an unknown id
//     skips the framed arguments.
package marshal
