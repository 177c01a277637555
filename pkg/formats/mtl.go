package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MTL format errors.
var (
	ErrMaterialLib = errors.New("invalid material library")
)

// MTLMaterial is one newmtl block. Fields the block does not set keep the
// values of the blank material.
type MTLMaterial struct {
	Name      string
	Diffuse   [3]float32 // Kd
	Ambient   [3]float32 // Ka
	Specular  [3]float32 // Ks
	Shininess float32    // Ns rescaled from [0,1000] to [0,128]
	Density   float32    // Ni
	Dissolve  float32    // d or Tr, 1 is opaque
	Illum     int
}

// NewMTLMaterial returns a material with the blank defaults.
func NewMTLMaterial(name string) MTLMaterial {
	return MTLMaterial{
		Name:      name,
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
		Ambient:   [3]float32{0.2, 0.2, 0.2},
		Shininess: 65,
		Dissolve:  1,
		Illum:     2,
	}
}

// MTL represents a parsed Wavefront material library.
type MTL struct {
	Materials []MTLMaterial
}

// Find returns the named material.
func (m *MTL) Find(name string) (*MTLMaterial, bool) {
	for i := range m.Materials {
		if m.Materials[i].Name == name {
			return &m.Materials[i], true
		}
	}
	return nil, false
}

// ParseMTL parses Wavefront MTL data.
//
// Supported statements are newmtl, Kd, Ka, Ks, Ns, Ni, d, Tr and illum.
// Tr is read the same way as d. Other statements are skipped.
func ParseMTL(data []byte) (*MTL, error) {
	mtl := &MTL{}

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: newmtl without a name", lineNo, ErrMaterialLib)
			}
			mtl.Materials = append(mtl.Materials, NewMTLMaterial(fields[1]))
			continue
		}

		var cur *MTLMaterial
		if n := len(mtl.Materials); n > 0 {
			cur = &mtl.Materials[n-1]
		}

		var err error
		switch fields[0] {
		case "Kd", "Ka", "Ks", "Ns", "Ni", "d", "Tr", "illum":
			if cur == nil {
				return nil, fmt.Errorf("line %d: %w: %s before newmtl", lineNo, ErrMaterialLib, fields[0])
			}
		default:
			continue
		}

		args := fields[1:]
		switch fields[0] {
		case "Kd":
			err = parseFloats(args, cur.Diffuse[:])
		case "Ka":
			err = parseFloats(args, cur.Ambient[:])
		case "Ks":
			err = parseFloats(args, cur.Specular[:])
		case "Ns":
			err = parseScalar(args, &cur.Shininess)
			cur.Shininess = cur.Shininess * 128 / 1000
		case "Ni":
			err = parseScalar(args, &cur.Density)
		case "d", "Tr":
			err = parseScalar(args, &cur.Dissolve)
		case "illum":
			if len(args) == 0 {
				err = fmt.Errorf("%w: illum without a value", ErrInvalidNumber)
				break
			}
			cur.Illum, err = strconv.Atoi(args[0])
			if err != nil {
				err = fmt.Errorf("%w: %q", ErrInvalidNumber, args[0])
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}

	return mtl, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (*MTL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data)
}

func parseScalar(fields []string, out *float32) error {
	var f [1]float32
	if err := parseFloats(fields, f[:]); err != nil {
		return err
	}
	*out = f[0]
	return nil
}
