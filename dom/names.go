package dom

import (
	"regexp"
	"strings"
)

// nameStartChar/nameChar approximate the XML Name production closely enough
// for the ASCII tag/attribute names this parser ever constructs from parsed
// markup or from factory calls; full XML 1.0 Name validation (covering the
// entire Unicode NameStartChar/NameChar tables) is out of scope for an HTML
// parser's own element/attribute factories.
var reValidName = regexp.MustCompile(`^[A-Za-z_:][A-Za-z0-9_.:\-]*$`)

// ValidateName reports an InvalidCharacterError if name is not a valid XML
// Name, per the DOM's "validate" algorithm used by createElement/setAttribute.
func ValidateName(name string) error {
	if name == "" || !reValidName.MatchString(name) {
		return ErrInvalidCharacter("\"" + name + "\" is not a valid name")
	}
	return nil
}

// ValidateQualifiedName additionally rejects a name with more than one colon,
// or a colon as the first or last character, per the DOM's "validate and
// extract" algorithm.
func ValidateQualifiedName(qualifiedName string) error {
	if err := ValidateName(qualifiedName); err != nil {
		return err
	}
	colons := 0
	for i, r := range qualifiedName {
		if r != ':' {
			continue
		}
		colons++
		if i == 0 || i == len(qualifiedName)-1 {
			return ErrInvalidCharacter("\"" + qualifiedName + "\" has a leading or trailing colon")
		}
	}
	if colons > 1 {
		return ErrInvalidCharacter("\"" + qualifiedName + "\" has more than one colon")
	}
	return nil
}

// ValidateAndExtract splits qualifiedName into its namespace prefix and local
// name, enforcing the DOM's namespace constraints (a "xml" prefix requires
// the XML namespace, a "xmlns" prefix or name requires the XMLNS namespace,
// and any other prefix requires a non-empty namespace).
func ValidateAndExtract(namespace, qualifiedName string) (prefix, localName string, err error) {
	if err := ValidateQualifiedName(qualifiedName); err != nil {
		return "", "", err
	}
	localName = qualifiedName
	if idx := strings.IndexByte(qualifiedName, ':'); idx >= 0 {
		prefix = qualifiedName[:idx]
		localName = qualifiedName[idx+1:]
	}
	if prefix != "" && namespace == "" {
		return "", "", ErrNamespace("prefix \"" + prefix + "\" requires a namespace")
	}
	if prefix == "xml" && namespace != NamespaceXML {
		return "", "", ErrNamespace("\"xml\" prefix requires the XML namespace")
	}
	if (qualifiedName == "xmlns" || prefix == "xmlns") && namespace != NamespaceXMLNS {
		return "", "", ErrNamespace("\"xmlns\" prefix/name requires the XMLNS namespace")
	}
	if namespace == NamespaceXMLNS && qualifiedName != "xmlns" && prefix != "xmlns" {
		return "", "", ErrNamespace("the XMLNS namespace requires the \"xmlns\" prefix or name")
	}
	return prefix, localName, nil
}
