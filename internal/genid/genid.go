// Package genid mints collision-free synthetic names for compiler-
// generated functions — boxing layers   and generic
// reification copies (GLOSSARY: "Reification") — that never appear in
// source and so need no relation to user-chosen identifiers beyond a
// readable prefix. Grounded on pkg/runtime/runtime.go's
// idPrefix + "_" + uuid.New().String() instance-id scheme, using the
// same github.com/google/uuid dependency.
package genid

import (
	"strings"

	"github.com/google/uuid"
)

// BoxingLayer names a synthesised forwarding function reconciling a
// storage mismatch between a protocol method and its concrete
// implementation (the CallableBox case).
func BoxingLayer(ownerName, methodName string) string {
	return sanitize(ownerName) + "_" + sanitize(methodName) + "_box_" + uuid.New().String()
}

// Reification names a generic definition's monomorphised copy, minted
// once per distinct argument binding a call site requires (GLOSSARY).
func Reification(ownerName string) string {
	return sanitize(ownerName) + "_reify_" + uuid.New().String()
}

func sanitize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
