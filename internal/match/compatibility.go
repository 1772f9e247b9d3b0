package match

import (
	"datamapper/internal/common"
	"datamapper/internal/document"
)

var dateTypes = map[document.FieldType]bool{
	document.TypeDate:       true,
	document.TypeDateTime:   true,
	document.TypeDateTimeTZ: true,
	document.TypeTime:       true,
}

var numericTypes = map[document.FieldType]bool{
	document.TypeLong:    true,
	document.TypeInteger: true,
	document.TypeFloat:   true,
	document.TypeDouble:  true,
	document.TypeShort:   true,
	document.TypeByte:    true,
	document.TypeDecimal: true,
	document.TypeNumber:  true,
}

// IsDateType reports whether t is one of the types ANY_DATE stands for.
func IsDateType(t document.FieldType) bool {
	return dateTypes[t]
}

// IsNumericType reports whether t is one of the types NUMBER stands for.
func IsNumericType(t document.FieldType) bool {
	return numericTypes[t]
}

// IsTypeCompatible reports whether a field of type selected satisfies a
// declared action type. ANY accepts everything, ANY_DATE accepts the date
// and time types, NUMBER accepts the numeric types; otherwise the types
// must be equal.
func IsTypeCompatible(declared, selected document.FieldType) bool {
	switch declared {
	case document.TypeAny:
		return true
	case document.TypeAnyDate:
		return IsDateType(selected)
	case document.TypeNumber:
		return IsNumericType(selected)
	default:
		return declared == selected
	}
}

// TypeCompatibility represents how well a source field type feeds a target field type.
type TypeCompatibility int

const (
	// TypeIncompatible means no conversion is known.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means the runtime converts through a string representation.
	TypeNeedsTransform
	// TypeConvertible means both types are in the same numeric or date family.
	TypeConvertible
	// TypeAssignable means one side is ANY.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
	SourceType    document.FieldType
	TargetType    document.FieldType
}

// ScoreTypeCompatibility determines how well source feeds target.
func ScoreTypeCompatibility(source, target document.FieldType) TypeCompatibilityResult {
	res := TypeCompatibilityResult{SourceType: source, TargetType: target}

	switch {
	case source == target:
		res.Compatibility = TypeIdentical
		res.Reason = "types are identical"
	case source == document.TypeAny || target == document.TypeAny:
		res.Compatibility = TypeAssignable
		res.Reason = "one side accepts any type"
	case IsNumericType(source) && IsNumericType(target):
		res.Compatibility = TypeConvertible
		res.Reason = "both types are numeric"
	case IsDateType(source) && IsDateType(target):
		res.Compatibility = TypeConvertible
		res.Reason = "both types are dates"
	case isScalar(source) && isScalar(target) && (source == document.TypeString || target == document.TypeString):
		res.Compatibility = TypeNeedsTransform
		res.Reason = "conversion through a string representation"
	default:
		res.Compatibility = TypeIncompatible
		res.Reason = "types are not compatible"
	}

	return res
}

func isScalar(t document.FieldType) bool {
	switch t {
	case document.TypeComplex, document.TypeNone, document.TypeUnsupported, document.TypeByteArray:
		return false
	default:
		return true
	}
}
