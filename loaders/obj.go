// Package loaders marshals mesh data from on-disk formats into the flat
// attribute arrays the rest of the library operates on. Only the Wavefront
// OBJ text format is supported.
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/geometry-tools/core"
	"github.com/spaghettifunk/geometry-tools/geometry"
	"github.com/spaghettifunk/geometry-tools/math"
)

// objCorner references one position/uv/normal triple from the separate OBJ
// index spaces. Zero means the attribute was absent on the face.
type objCorner struct {
	position int
	uv       int
	normal   int
}

// ObjLoader parses Wavefront OBJ files into geometry configurations.
// OBJ keeps separate index spaces per attribute, while the attribute
// calculators expect a single shared space, so the loader emits one vertex
// per face corner. Call DeduplicateVertices on the result to weld the mesh
// back together.
type ObjLoader struct{}

// Load reads and parses the OBJ file at path. The geometry name is the file
// name without its extension. Faces with more than three corners are
// triangulated as fans; points and lines are skipped.
func (ol *ObjLoader) Load(path string) (*geometry.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	cfg, err := ol.parse(file, name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (ol *ObjLoader) parse(r io.Reader, name string) (*geometry.Config, error) {
	var objPositions []math.Vec3
	var objUVs []math.Vec2
	var objNormals []math.Vec3
	var corners []objCorner

	hasUVs := false
	hasNormals := false
	lineNumber := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNumber, err)
			}
			objPositions = append(objPositions, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: invalid texture coordinate: %s", lineNumber, line)
			}
			u, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			v, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			objUVs = append(objUVs, math.Vec2{X: u, Y: v})
		case "vn":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid normal: %w", lineNumber, err)
			}
			objNormals = append(objNormals, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners: %s", lineNumber, line)
			}
			var face []objCorner
			for _, ref := range fields[1:] {
				corner, err := parseCorner(ref, len(objPositions), len(objUVs), len(objNormals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				if corner.uv != 0 {
					hasUVs = true
				}
				if corner.normal != 0 {
					hasNormals = true
				}
				face = append(face, corner)
			}
			// Triangulate the face as a fan.
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		default:
			// Groups, objects, materials and smoothing state do not
			// affect attribute computation.
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Flatten the separate OBJ index spaces into one vertex per corner.
	positions := make([]math.Vec3, len(corners))
	var normals []math.Vec3
	var uvs []math.Vec2
	if hasNormals {
		normals = make([]math.Vec3, len(corners))
	}
	if hasUVs {
		uvs = make([]math.Vec2, len(corners))
	}
	indices := make([]uint32, len(corners))

	for i, corner := range corners {
		positions[i] = objPositions[corner.position-1]
		if hasNormals && corner.normal != 0 {
			normals[i] = objNormals[corner.normal-1]
		}
		if hasUVs && corner.uv != 0 {
			uvs[i] = objUVs[corner.uv-1]
		}
		indices[i] = uint32(i)
	}

	core.LogDebug("loaded obj %s: %d vertices, %d triangles, normals=%t uvs=%t",
		name, len(positions), len(indices)/3, hasNormals, hasUVs)

	return geometry.NewConfig(name, positions, normals, uvs, indices), nil
}

// parseCorner parses one face corner reference of the form v, v/vt, v//vn
// or v/vt/vn. Negative references count back from the end of the respective
// attribute list.
func parseCorner(ref string, positionCount, uvCount, normalCount int) (objCorner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) == 0 || len(parts) > 3 {
		return objCorner{}, fmt.Errorf("invalid face corner: %s", ref)
	}

	corner := objCorner{}

	position, err := parseRef(parts[0], positionCount)
	if err != nil {
		return objCorner{}, fmt.Errorf("invalid position reference: %s", ref)
	}
	corner.position = position

	if len(parts) > 1 && parts[1] != "" {
		if corner.uv, err = parseRef(parts[1], uvCount); err != nil {
			return objCorner{}, fmt.Errorf("invalid uv reference: %s", ref)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if corner.normal, err = parseRef(parts[2], normalCount); err != nil {
			return objCorner{}, fmt.Errorf("invalid normal reference: %s", ref)
		}
	}
	return corner, nil
}

// parseRef resolves an OBJ 1-based (possibly negative) reference against
// the current attribute count.
func parseRef(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("reference %s out of range (count %d)", s, count)
	}
	return n, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid float value: %s", s)
	}
	return float32(f), nil
}

func parseFloats3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	x, err := parseFloat(fields[0])
	if err != nil {
		return math.Vec3{}, err
	}
	y, err := parseFloat(fields[1])
	if err != nil {
		return math.Vec3{}, err
	}
	z, err := parseFloat(fields[2])
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: x, Y: y, Z: z}, nil
}
