package world

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sentra-lang/typeset/internal/semver"
)

// PackageSpec identifies a specific version of a package:
// "@namespace/name:major.minor.patch".
//
// Grounded exactly on original_source/crates/typst-syntax/src/package.rs.
type PackageSpec struct {
	Namespace string
	Name      string
	Version   semver.Version
}

// VersionlessPackageSpec identifies a package without pinning its version:
// "@namespace/name".
type VersionlessPackageSpec struct {
	Namespace string
	Name      string
}

// At fills in a version to produce a complete PackageSpec.
func (v VersionlessPackageSpec) At(version semver.Version) PackageSpec {
	return PackageSpec{Namespace: v.Namespace, Name: v.Name, Version: version}
}

func (p PackageSpec) String() string {
	return fmt.Sprintf("@%s/%s:%s", p.Namespace, p.Name, p.Version)
}

func (v VersionlessPackageSpec) String() string {
	return fmt.Sprintf("@%s/%s", v.Namespace, v.Name)
}

// ParsePackageSpec parses "@namespace/name:major.minor.patch".
func ParsePackageSpec(s string) (PackageSpec, error) {
	ns, rest, err := parseNamespace(s)
	if err != nil {
		return PackageSpec{}, err
	}
	name, rest, err := parseName(rest)
	if err != nil {
		return PackageSpec{}, err
	}
	if !strings.HasPrefix(rest, ":") {
		return PackageSpec{}, fmt.Errorf("package specification is missing version")
	}
	version, err := ParseVersion(rest[1:])
	if err != nil {
		return PackageSpec{}, err
	}
	return PackageSpec{Namespace: ns, Name: name, Version: version}, nil
}

// ParseVersionlessPackageSpec parses "@namespace/name" with no trailing
// version component.
func ParseVersionlessPackageSpec(s string) (VersionlessPackageSpec, error) {
	ns, rest, err := parseNamespace(s)
	if err != nil {
		return VersionlessPackageSpec{}, err
	}
	name, rest, err := parseName(rest)
	if err != nil {
		return VersionlessPackageSpec{}, err
	}
	if rest != "" {
		return VersionlessPackageSpec{}, fmt.Errorf("unexpected version in versionless package specification")
	}
	return VersionlessPackageSpec{Namespace: ns, Name: name}, nil
}

func parseNamespace(s string) (namespace, rest string, err error) {
	if !strings.HasPrefix(s, "@") {
		return "", "", fmt.Errorf("package specification must start with '@'")
	}
	s = s[1:]
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		idx = len(s)
	}
	namespace = s[:idx]
	rest = s[idx:]
	if namespace == "" {
		return "", "", fmt.Errorf("package specification is missing namespace")
	}
	if !isIdent(namespace) {
		return "", "", fmt.Errorf("`%s` is not a valid package namespace", namespace)
	}
	return namespace, rest, nil
}

func parseName(s string) (name, rest string, err error) {
	s = strings.TrimPrefix(s, "/")
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		idx = len(s)
	}
	name = s[:idx]
	rest = s[idx:]
	if name == "" {
		return "", "", fmt.Errorf("package specification is missing name")
	}
	if !isIdent(name) {
		return "", "", fmt.Errorf("`%s` is not a valid package name", name)
	}
	return name, rest, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '-'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

// ParseVersion parses "major.minor.patch", rejecting missing or extra parts.
func ParseVersion(s string) (semver.Version, error) {
	parts := strings.Split(s, ".")
	names := []string{"major", "minor", "patch"}
	if len(parts) < 3 {
		return semver.Version{}, fmt.Errorf("version number is missing %s version", names[len(parts)-1+1])
	}
	if len(parts) > 3 {
		return semver.Version{}, fmt.Errorf("version number has unexpected fourth component: `%s`", parts[3])
	}
	nums := make([]uint32, 3)
	for i, p := range parts {
		if p == "" {
			return semver.Version{}, fmt.Errorf("version number is missing %s version", names[i])
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return semver.Version{}, fmt.Errorf("`%s` is not a valid %s version", p, names[i])
		}
		nums[i] = uint32(n)
	}
	return semver.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// PackageManifest is the parsed typst.toml-equivalent manifest.
type PackageManifest struct {
	Package  PackageInfo
	Template *TemplateInfo
}

// PackageInfo is the "[package]" table of a manifest.
type PackageInfo struct {
	Name       string
	Version    semver.Version
	Entrypoint string
	Compiler   *semver.Version
}

// TemplateInfo is the "[template]" table of a manifest.
type TemplateInfo struct {
	Path       string
	Entrypoint string
}

// Validate ensures the manifest matches the spec it was resolved for, and
// that the current engine version satisfies any minimum compiler
// requirement.
func (m PackageManifest) Validate(spec PackageSpec, engineVersion semver.Version) error {
	if m.Package.Name != spec.Name {
		return fmt.Errorf("package manifest contains mismatched name `%s`", m.Package.Name)
	}
	if m.Package.Version != spec.Version {
		return fmt.Errorf("package manifest contains mismatched version %s", m.Package.Version)
	}
	if m.Package.Compiler != nil && engineVersion.Less(*m.Package.Compiler) {
		return fmt.Errorf("package requires engine %s or newer (current version is %s)",
			*m.Package.Compiler, engineVersion)
	}
	return nil
}
