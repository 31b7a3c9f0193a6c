// Package quoteless renders data as relaxed, human-readable text.
//
// The output looks like JSON with the noise taken out: keys and simple
// strings are written without quotes, and quotes only appear when a string
// would otherwise be ambiguous.
//
//	{
//	  name: quoteless,
//	  tags: [
//	    fmt,
//	    'human readable'
//	  ],
//	  escaped: "it's",
//	  ratio: 0.5,
//	  missing: null
//	}
//
// It is meant for debugging, logging, and emitting configuration for people to
// read. There is deliberately no parser: the format is lossy (NaN and the
// infinities are written as null, for example) and is not guaranteed to
// round-trip.
//
// Like the builtin json package, quoteless can convert arbitrary go values.
// Structs become objects keyed by their field names (or `quoteless:"name"` /
// `json:"name"` tags), maps become objects in sorted key order, and slices
// become arrays. When the order of keys matters, build a tree of [Value]s
// directly, or decode one with the load package:
//
//	obj := quoteless.NewObject()
//	obj.Set("b", quoteless.Int(1))
//	obj.Set("a", quoteless.NewArray(quoteless.String("x"), quoteless.Null))
//	fmt.Println(quoteless.Stringify(obj, quoteless.Options{Compact: true}))
//	// {b: 1, a: [x, null]}
//
// Values may refer to themselves. The second time a composite is reached
// while it is still being rendered it is written as "[Circular Reference]".
package quoteless
