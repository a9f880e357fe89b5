package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// typeLayout is the byte size and alignment of a WGSL type in the uniform address space.
type typeLayout struct {
	size  uint64
	align uint64
}

// vertexFormats maps WGSL vertex attribute types to wgpu vertex formats and byte sizes.
var vertexFormats = map[string]struct {
	format wgpu.VertexFormat
	size   uint64
}{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"i32":       {wgpu.VertexFormatSint32, 4},
}

var primitiveLayouts = map[string]typeLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2f":       {8, 8},
	"vec2<f32>":   {8, 8},
	"vec3f":       {12, 16},
	"vec3<f32>":   {12, 16},
	"vec4f":       {16, 16},
	"vec4<f32>":   {16, 16},
	"mat4x4f":     {64, 16},
	"mat4x4<f32>": {64, 16},
}

var (
	structRegex     = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	fieldRegex      = regexp.MustCompile(`^((?:@\w+\([^)]*\)\s*)*)(\w+)\s*:\s*(.+)$`)
	locationRegex   = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex    = regexp.MustCompile(`@builtin\(`)
	bindingRegex    = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
	lineCommentExpr = regexp.MustCompile(`//[^\n]*`)
)

type wgslField struct {
	name     string
	typeName string
	location int
	builtin  bool
}

type wgslStruct struct {
	name   string
	fields []wgslField
}

func stripComments(source string) string {
	return lineCommentExpr.ReplaceAllString(source, "")
}

func parseStructs(source string) []wgslStruct {
	var structs []wgslStruct
	for _, m := range structRegex.FindAllStringSubmatch(source, -1) {
		s := wgslStruct{name: m[1]}
		for _, raw := range strings.Split(m[2], ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			fm := fieldRegex.FindStringSubmatch(raw)
			if fm == nil {
				continue
			}
			f := wgslField{name: fm[2], typeName: strings.TrimSpace(fm[3]), location: -1}
			if lm := locationRegex.FindStringSubmatch(fm[1]); lm != nil {
				f.location, _ = strconv.Atoi(lm[1])
			}
			f.builtin = builtinRegex.MatchString(fm[1])
			s.fields = append(s.fields, f)
		}
		structs = append(structs, s)
	}
	return structs
}

// reflectEntryPoint returns the first function tagged with the stage attribute.
func reflectEntryPoint(source string, shaderType ShaderType) string {
	attr := "@vertex"
	if shaderType == ShaderTypeFragment {
		attr = "@fragment"
	}
	re := regexp.MustCompile(`(?s)` + attr + `\b.*?\bfn\s+(\w+)`)
	if m := re.FindStringSubmatch(source); m != nil {
		return m[1]
	}
	return ""
}

// reflectVertexLayouts builds one buffer layout per vertex input struct, in declaration
// order. A vertex input struct has @location fields and no @builtin fields; structs whose
// name ends in "Instance" step per instance.
func reflectVertexLayouts(source string) []wgpu.VertexBufferLayout {
	var layouts []wgpu.VertexBufferLayout
	for _, s := range parseStructs(source) {
		layout, ok := vertexLayout(s)
		if ok {
			layouts = append(layouts, layout)
		}
	}
	return layouts
}

func vertexLayout(s wgslStruct) (wgpu.VertexBufferLayout, bool) {
	if len(s.fields) == 0 {
		return wgpu.VertexBufferLayout{}, false
	}
	attrs := make([]wgpu.VertexAttribute, 0, len(s.fields))
	var offset uint64
	for _, f := range s.fields {
		if f.builtin || f.location < 0 {
			return wgpu.VertexBufferLayout{}, false
		}
		info, ok := vertexFormats[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}
	step := wgpu.VertexStepModeVertex
	if strings.HasSuffix(s.name, "Instance") {
		step = wgpu.VertexStepModeInstance
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    step,
		Attributes:  attrs,
	}, true
}

func roundUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// structLayouts computes uniform-space layouts for every struct made of known types.
func structLayouts(structs []wgslStruct) map[string]typeLayout {
	known := make(map[string]typeLayout, len(structs))
	for _, s := range structs {
		var offset, align uint64 = 0, 1
		ok := true
		for _, f := range s.fields {
			l, found := primitiveLayouts[f.typeName]
			if !found {
				l, found = known[f.typeName]
			}
			if !found {
				ok = false
				break
			}
			offset = roundUp(l.align, offset) + l.size
			align = max(align, l.align)
		}
		if ok {
			known[s.name] = typeLayout{size: roundUp(align, offset), align: align}
		}
	}
	return known
}

// reflectBindGroups extracts uniform and storage buffer bindings, grouped by @group index.
// Every entry is visible to the given stage; entries are sorted by binding.
func reflectBindGroups(source string, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	layouts := structLayouts(parseStructs(source))
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, m := range bindingRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		space := strings.TrimSpace(m[3])
		typeName := strings.TrimSpace(m[5])

		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(binding),
			Visibility: visibility,
		}
		switch {
		case space == "uniform":
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case strings.HasPrefix(space, "storage") && strings.Contains(space, "read_write"):
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		case strings.HasPrefix(space, "storage"):
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		default:
			continue
		}
		if l, ok := primitiveLayouts[typeName]; ok {
			entry.Buffer.MinBindingSize = l.size
		} else if l, ok := layouts[typeName]; ok {
			entry.Buffer.MinBindingSize = l.size
		}

		groups[group] = append(groups[group], entry)
		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][binding] = m[4]
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, names
}
