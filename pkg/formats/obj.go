package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-rt/pkg/math"
)

// OBJ format errors.
var (
	ErrEmptyOBJ      = errors.New("OBJ data has no faces")
	ErrInvalidFace   = errors.New("invalid OBJ face")
	ErrNegativeIndex = errors.New("non-positive OBJ index")
	ErrInvalidNumber = errors.New("invalid number")
)

// OBJDefaultGroup names the group that collects faces declared before any "g".
const OBJDefaultGroup = "default"

// OBJFace is a triangle. Indices are 1-based as in the file; 0 marks an
// absent texcoord or normal.
type OBJFace struct {
	V     [3]int
	T     [3]int
	N     [3]int
	Group int // index into OBJ.Groups
}

// OBJGroup is a named face group and the material it was last bound to.
type OBJGroup struct {
	Name     string
	Material string // empty when no usemtl applies
}

// OBJ represents a parsed Wavefront OBJ file. Polygons are fan-triangulated.
type OBJ struct {
	Vertices     []math.Vec3
	Normals      []math.Vec3
	TexCoords    []math.Vec2
	Faces        []OBJFace
	Groups       []OBJGroup // Groups[0] is OBJDefaultGroup
	MaterialLibs []string   // mtllib names in file order
}

// ParseOBJ parses Wavefront OBJ data.
//
// Supported statements are v, vn, vt, f, g, usemtl and mtllib. Faces may use
// the v, v/t, v//n and v/t/n vertex forms. Other statements are skipped.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{Groups: []OBJGroup{{Name: OBJDefaultGroup}}}
	group := 0
	material := ""

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			obj.Vertices = append(obj.Vertices, v)
		case "vn":
			var n math.Vec3
			n, err = parseVec3(fields[1:])
			obj.Normals = append(obj.Normals, n)
		case "vt":
			var t math.Vec2
			t, err = parseVec2(fields[1:])
			obj.TexCoords = append(obj.TexCoords, t)
		case "f":
			err = obj.parseFace(fields[1:], group)
		case "g":
			name := OBJDefaultGroup
			if len(fields) > 1 {
				name = fields[1]
			}
			group = obj.findGroup(name)
			obj.Groups[group].Material = material
		case "usemtl":
			if len(fields) < 2 {
				err = errors.New("usemtl without a name")
				break
			}
			material = fields[1]
			obj.Groups[group].Material = material
		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(obj.Faces) == 0 {
		return nil, ErrEmptyOBJ
	}
	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

// CountByGroup returns the number of faces in each group.
func (o *OBJ) CountByGroup() map[string]int {
	counts := make(map[string]int)
	for _, f := range o.Faces {
		counts[o.Groups[f.Group].Name]++
	}
	return counts
}

func (o *OBJ) findGroup(name string) int {
	for i := range o.Groups {
		if o.Groups[i].Name == name {
			return i
		}
	}
	o.Groups = append(o.Groups, OBJGroup{Name: name})
	return len(o.Groups) - 1
}

// parseFace appends the fan triangulation of a polygon.
func (o *OBJ) parseFace(refs []string, group int) error {
	if len(refs) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrInvalidFace, len(refs))
	}

	type corner struct{ v, t, n int }
	corners := make([]corner, len(refs))
	for i, ref := range refs {
		v, t, n, err := parseFaceVertex(ref)
		if err != nil {
			return err
		}
		corners[i] = corner{v, t, n}
	}

	for i := 2; i < len(corners); i++ {
		a, b, c := corners[0], corners[i-1], corners[i]
		o.Faces = append(o.Faces, OBJFace{
			V:     [3]int{a.v, b.v, c.v},
			T:     [3]int{a.t, b.t, c.t},
			N:     [3]int{a.n, b.n, c.n},
			Group: group,
		})
	}
	return nil
}

// parseFaceVertex parses one of "v", "v/t", "v//n" or "v/t/n".
func parseFaceVertex(ref string) (v, t, n int, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 || parts[0] == "" {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFace, ref)
	}

	idx := [3]int{}
	for i, p := range parts {
		if p == "" {
			// Only the texcoord slot may be empty, as in "v//n".
			if i == 1 && len(parts) == 3 {
				continue
			}
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFace, ref)
		}
		x, perr := strconv.Atoi(p)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFace, ref)
		}
		if x <= 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrNegativeIndex, ref)
		}
		idx[i] = x
	}
	return idx[0], idx[1], idx[2], nil
}

func parseFloats(fields []string, out []float32) error {
	if len(fields) < len(out) {
		return fmt.Errorf("%w: want %d values, got %d", ErrInvalidNumber, len(out), len(fields))
	}
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidNumber, fields[i])
		}
		out[i] = float32(f)
	}
	return nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	var f [3]float32
	if err := parseFloats(fields, f[:]); err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	var f [2]float32
	if err := parseFloats(fields, f[:]); err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}
