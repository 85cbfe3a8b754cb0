package typegen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InterfaceName is the TypeScript interface name of a table:
// "yours.table1" becomes "IYoursTable1".
func InterfaceName(qualifiedName string) string {
	return "I" + pascalCase(qualifiedName)
}

// StructName is the Go type name of a table: "auth.user_roles" becomes
// "AuthUserRoles".
func StructName(qualifiedName string) string {
	return pascalCase(qualifiedName)
}

// FieldName is the Go field name of a column.
func FieldName(column string) string {
	return pascalCase(column)
}

// pascalCase splits s on anything that is not a letter or digit and
// title-cases each part. Existing capitals inside a part are kept.
func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	caser := cases.Title(language.Und, cases.NoLower)
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	return strings.Join(parts, "")
}
