// Package cha implements a closed-world class-hierarchy analysis engine for
// a whole-program optimizing compiler of a single-inheritance,
// multiple-interface, mixin-composing object-oriented language.
//
// The engine has two lifecycle phases. In the open phase the resolver feeds
// classes, typedefs, used elements and mixin applications into a World as it
// discovers them. World.Close freezes the structural indices; afterward all
// subclass/subtype/mixin/instantiation and devirtualization queries answer
// against a stable snapshot. The side-effect registry stays writable after
// close, since it is refined during the type-inference pass that runs once
// the class world is known.
//
// The package never constructs a Class or Element itself — those are opaque
// handles owned by the resolver — and it never allocates a TypeMask; both
// are injected capabilities (see capabilities.go).
package cha
