// Package modfile persists metadata modules as msgpack payloads. The format
// is a fixture and inspection vehicle for the toolchain, not a claim to read
// real binary modules; the external reader/writer owns those.
package modfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"weft/internal/metadata"
	"weft/internal/opcode"
)

// Current schema version - increment when the payload format changes.
const schemaVersion uint16 = 1

// ErrSchemaMismatch indicates a payload written by an incompatible version.
var ErrSchemaMismatch = errors.New("module file schema mismatch")

// The payload mirrors the metadata model with indices in place of pointers,
// so the object graph (declaring-type back-pointers, debug-location anchors)
// round-trips without cycles.

type payload struct {
	Schema uint16
	Name   string
	Scope  string
	Types  []typeRec
}

type typeRec struct {
	Namespace     string
	Name          string
	GenericParams []string
	Methods       []methodRec
	Fields        []fieldRec
	Properties    []propertyRec
	Events        []eventRec
}

type methodRec struct {
	Name          string
	Flags         uint16
	Call          uint8
	GenericParams []string
	Return        *typeRefRec
	Params        []paramRec
	HasBody       bool
	Instrs        []instrRec
	Locations     []locRec
}

type fieldRec struct {
	Name  string
	Flags uint16
	Type  *typeRefRec
}

// Accessor fields index into the owning type's method list; -1 means the
// accessor is absent.
type propertyRec struct {
	Name   string
	Type   *typeRefRec
	Getter int32
	Setter int32
}

type eventRec struct {
	Name   string
	Type   *typeRefRec
	Add    int32
	Remove int32
	Raise  int32
}

type paramRec struct {
	Name string
	Type *typeRefRec
}

type typeRefRec struct {
	Kind      uint8
	Namespace string
	Name      string
	Scope     string
	Args      []*typeRefRec
	Index     uint32
	Sentinel  bool
}

type instrRec struct {
	Offset  uint32
	Op      uint16
	Operand string
}

// Instr indexes into the method's instruction list.
type locRec struct {
	Instr     uint32
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
	Document  string
}

// Save serializes the module, writing through a temp file and an atomic
// rename.
func Save(path string, mod *metadata.Module) error {
	p, err := encode(mod)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load reads and rebuilds a module from disk.
func Load(path string) (*metadata.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var p payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: failed to decode module file: %w", path, err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", path, ErrSchemaMismatch, p.Schema, schemaVersion)
	}
	return decode(&p)
}

func encode(mod *metadata.Module) (*payload, error) {
	p := &payload{Schema: schemaVersion, Name: mod.Name, Scope: mod.Scope}
	for _, def := range mod.TypeDefs {
		tr := typeRec{
			Namespace:     def.Namespace,
			Name:          def.Name,
			GenericParams: def.GenericParams,
		}
		methodIndex := make(map[*metadata.MethodDef]int32, len(def.Methods))
		for i, m := range def.Methods {
			idx, err := safecast.Conv[int32](i)
			if err != nil {
				return nil, fmt.Errorf("method index overflow: %w", err)
			}
			methodIndex[m] = idx
			mr := methodRec{
				Name:          m.Name,
				Flags:         uint16(m.Flags),
				Call:          uint8(m.Call),
				GenericParams: m.GenericParams,
				Return:        encodeRef(m.Return),
			}
			for _, prm := range m.Params {
				mr.Params = append(mr.Params, paramRec{Name: prm.Name, Type: encodeRef(prm.Type)})
			}
			if m.Body != nil {
				mr.HasBody = true
				for _, in := range m.Body.Instructions {
					operand := ""
					if in.Operand != nil {
						operand = fmt.Sprint(in.Operand)
					}
					mr.Instrs = append(mr.Instrs, instrRec{Offset: in.Offset, Op: uint16(in.Op), Operand: operand})
				}
				for _, loc := range m.Body.DebugLocations {
					anchor, ok := m.Body.IndexOf(loc.Anchor)
					if !ok {
						return nil, fmt.Errorf("debug location %s anchored outside the instruction stream", loc)
					}
					mr.Locations = append(mr.Locations, locRec{
						Instr:     anchor,
						StartLine: loc.StartLine,
						StartCol:  loc.StartCol,
						EndLine:   loc.EndLine,
						EndCol:    loc.EndCol,
						Document:  loc.Document,
					})
				}
			}
			tr.Methods = append(tr.Methods, mr)
		}
		for _, fld := range def.Fields {
			tr.Fields = append(tr.Fields, fieldRec{Name: fld.Name, Flags: uint16(fld.Flags), Type: encodeRef(fld.Type)})
		}
		for _, prop := range def.Properties {
			tr.Properties = append(tr.Properties, propertyRec{
				Name:   prop.Name,
				Type:   encodeRef(prop.Type),
				Getter: accessorIndex(methodIndex, prop.Getter),
				Setter: accessorIndex(methodIndex, prop.Setter),
			})
		}
		for _, ev := range def.Events {
			tr.Events = append(tr.Events, eventRec{
				Name:   ev.Name,
				Type:   encodeRef(ev.Type),
				Add:    accessorIndex(methodIndex, ev.Add),
				Remove: accessorIndex(methodIndex, ev.Remove),
				Raise:  accessorIndex(methodIndex, ev.Raise),
			})
		}
		p.Types = append(p.Types, tr)
	}
	return p, nil
}

func accessorIndex(index map[*metadata.MethodDef]int32, m *metadata.MethodDef) int32 {
	if m == nil {
		return -1
	}
	if idx, ok := index[m]; ok {
		return idx
	}
	return -1
}

func encodeRef(ref *metadata.TypeRef) *typeRefRec {
	if ref == nil {
		return nil
	}
	rec := &typeRefRec{
		Kind:      uint8(ref.Kind),
		Namespace: ref.Namespace,
		Name:      ref.Name,
		Scope:     ref.Scope,
		Index:     ref.Index,
		Sentinel:  ref.Sentinel,
	}
	for _, a := range ref.Args {
		rec.Args = append(rec.Args, encodeRef(a))
	}
	return rec
}

func decode(p *payload) (*metadata.Module, error) {
	mod := metadata.NewModule(p.Name, p.Scope)
	for _, tr := range p.Types {
		def := &metadata.TypeDef{
			Namespace:     tr.Namespace,
			Name:          tr.Name,
			GenericParams: tr.GenericParams,
		}
		for _, mr := range tr.Methods {
			m := &metadata.MethodDef{
				Name:          mr.Name,
				Flags:         metadata.MemberFlags(mr.Flags),
				Call:          metadata.CallConv(mr.Call),
				GenericParams: mr.GenericParams,
				Return:        decodeRef(mr.Return),
				DeclaringType: def,
			}
			for _, prm := range mr.Params {
				m.Params = append(m.Params, &metadata.Param{Name: prm.Name, Type: decodeRef(prm.Type)})
			}
			if mr.HasBody {
				body := &metadata.Body{}
				for _, ir := range mr.Instrs {
					body.Instructions = append(body.Instructions, &metadata.Instruction{
						Offset:  ir.Offset,
						Op:      opcode.Op(ir.Op),
						Operand: operandValue(ir.Operand),
					})
				}
				for _, lr := range mr.Locations {
					if int(lr.Instr) >= len(body.Instructions) {
						return nil, fmt.Errorf("type %s: method %s: debug location anchor %d out of range", def.FullName(), m.Name, lr.Instr)
					}
					body.DebugLocations = append(body.DebugLocations, &metadata.DebugLocation{
						Anchor:    body.Instructions[lr.Instr],
						StartLine: lr.StartLine,
						StartCol:  lr.StartCol,
						EndLine:   lr.EndLine,
						EndCol:    lr.EndCol,
						Document:  lr.Document,
					})
				}
				m.Body = body
			}
			def.Methods = append(def.Methods, m)
		}
		for _, fr := range tr.Fields {
			def.Fields = append(def.Fields, &metadata.FieldDef{
				Name:          fr.Name,
				Flags:         metadata.MemberFlags(fr.Flags),
				Type:          decodeRef(fr.Type),
				DeclaringType: def,
			})
		}
		for _, pr := range tr.Properties {
			def.Properties = append(def.Properties, &metadata.PropertyDef{
				Name:   pr.Name,
				Type:   decodeRef(pr.Type),
				Getter: methodAt(def, pr.Getter),
				Setter: methodAt(def, pr.Setter),
			})
		}
		for _, er := range tr.Events {
			def.Events = append(def.Events, &metadata.EventDef{
				Name:   er.Name,
				Type:   decodeRef(er.Type),
				Add:    methodAt(def, er.Add),
				Remove: methodAt(def, er.Remove),
				Raise:  methodAt(def, er.Raise),
			})
		}
		mod.AddType(def)
	}
	return mod, nil
}

func methodAt(def *metadata.TypeDef, idx int32) *metadata.MethodDef {
	if idx < 0 || int(idx) >= len(def.Methods) {
		return nil
	}
	return def.Methods[idx]
}

func decodeRef(rec *typeRefRec) *metadata.TypeRef {
	if rec == nil {
		return nil
	}
	ref := &metadata.TypeRef{
		Kind:      metadata.TypeRefKind(rec.Kind),
		Namespace: rec.Namespace,
		Name:      rec.Name,
		Scope:     rec.Scope,
		Index:     rec.Index,
		Sentinel:  rec.Sentinel,
	}
	for _, a := range rec.Args {
		ref.Args = append(ref.Args, decodeRef(a))
	}
	return ref
}

// operandValue keeps string operands as-is; the fixture format does not
// distinguish operand kinds beyond their printed form.
func operandValue(s string) any {
	if s == "" {
		return nil
	}
	return s
}
