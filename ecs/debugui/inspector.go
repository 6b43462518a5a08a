package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/heep/ecs"
)

// ComponentFields is one component of an inspected entity.
type ComponentFields struct {
	Type   reflect.Type
	Fields []Field
}

// Field is a settable leaf value inside a component. Nested struct fields
// are flattened with dotted names; a component that is not a struct has one
// field with an empty name.
type Field struct {
	Name  string
	Value reflect.Value
}

// InspectEntity returns the entity's components in archetype column order,
// or nil when the entity is not alive. Setting a Field writes straight into
// storage.
func InspectEntity(storage *ecs.Storage, id ecs.EntityId) []ComponentFields {
	if !storage.Alive(id) {
		return nil
	}

	var archetype *ecs.Archetype
	for _, a := range storage.GetArchetypes() {
		if a.ID() == id.ArchetypeId() {
			archetype = a
			break
		}
	}
	if archetype == nil {
		return nil
	}

	out := make([]ComponentFields, 0, len(archetype.Types()))
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		value := reflect.ValueOf(component).Elem()
		out = append(out, ComponentFields{Type: compType, Fields: flattenFields("", value)})
	}
	return out
}

func flattenFields(prefix string, value reflect.Value) []Field {
	if value.Kind() != reflect.Struct {
		return []Field{{Name: prefix, Value: value}}
	}

	var fields []Field
	for i := range value.NumField() {
		sf := value.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if prefix != "" {
			name = prefix + "." + name
		}
		fields = append(fields, flattenFields(name, value.Field(i))...)
	}
	return fields
}

// RenderInspector draws the components of the selected entity. Numeric and
// bool fields are editable.
func RenderInspector(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	components := InspectEntity(storage, selected)
	if components == nil {
		imgui.Text(fmt.Sprintf("Entity %s is gone", selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %s", selected))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", selected.ArchetypeId()))
	imgui.Separator()

	for _, component := range components {
		if !imgui.TreeNodeStr(component.Type.String()) {
			continue
		}
		if len(component.Fields) == 0 {
			imgui.Text("(tag)")
		}
		for _, field := range component.Fields {
			renderField(component.Type.String()+"."+field.Name, field)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func renderField(id string, field Field) {
	label := field.Name
	if label == "" {
		label = "value"
	}
	val := field.Value

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(label + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(label + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(label + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(label+"##"+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, val.Interface()))
	}
}
