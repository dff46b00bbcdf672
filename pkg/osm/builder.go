package osm

import (
	"fmt"
	"strings"
)

func (m *Model) AddBuildingStory(name string, nominalZ, floorToFloorHeight float64) BuildingStory {
	obj := NewObjectWithHandle(TypeBuildingStory, name)
	story := BuildingStory{obj: obj, model: m}
	story.SetNominalZCoordinate(nominalZ)
	story.SetNominalFloorToFloorHeight(floorToFloorHeight)
	obj.SetField(storyNominalFloorToFloorHeightField+3, "")
	_ = m.AddObject(obj)
	return story
}

func (m *Model) AddThermalZone(name string) ThermalZone {
	obj := NewObjectWithHandle(TypeThermalZone, name, "1")
	obj.SetField(zoneThermostatField+1, "No")
	_ = m.AddObject(obj)
	return ThermalZone{obj: obj, model: m}
}

func (m *Model) AddSizingZone(zone ThermalZone) *Object {
	obj := NewObjectWithHandle(TypeSizingZone)
	obj.SetField(sizingZoneZoneField, zone.Handle())
	_ = m.AddObject(obj)
	return obj
}

// FirstObjectOfType. first object of the type in model order.
func (m *Model) FirstObjectOfType(tipe string) (*Object, bool) {
	objs := m.ObjectsOfType(tipe)
	if len(objs) == 0 {
		return nil, false
	}
	return objs[0], true
}

// AddAirLoop. air loop with an empty demand side: zone splitter, zone mixer and a single zone reheat
// setpoint manager. zones are attached with AddBranchForZone.
func (m *Model) AddAirLoop(name string) AirLoopHVAC {
	loop := NewObjectWithHandle(TypeAirLoopHVAC, name)
	splitter := NewObjectWithHandle(TypeZoneSplitter, name+" Zone Splitter")
	mixer := NewObjectWithHandle(TypeZoneMixer, name+" Zone Mixer")
	loop.SetField(airLoopDesignSupplyFlowField, "Autosize")
	loop.SetField(airLoopDemandMixerField, mixer.Handle())
	loop.SetField(airLoopDemandSplitterField, splitter.Handle())

	spm := NewObjectWithHandle(TypeSetpointManagerSingleZoneRH, name+" Setpoint Manager", "-99", "99", "")

	for _, obj := range []*Object{loop, splitter, mixer, spm} {
		_ = m.AddObject(obj)
	}
	return AirLoopHVAC{obj: loop, model: m}
}

// AddBranchForZone. splitter -> uncontrolled terminal -> zone inlet port list, and zone return -> mixer.
func (m *Model) AddBranchForZone(loop AirLoopHVAC, zone ThermalZone) error {
	splitter, ok := m.lookup(loop.obj, airLoopDemandSplitterField, TypeZoneSplitter)
	if !ok {
		return fmt.Errorf("air loop '%s' has no zone splitter", loop.Name())
	}
	mixer, ok := m.lookup(loop.obj, airLoopDemandMixerField, TypeZoneMixer)
	if !ok {
		return fmt.Errorf("air loop '%s' has no zone mixer", loop.Name())
	}

	terminal := NewObjectWithHandle(TypeAirTerminalUncontrolled,
		fmt.Sprintf("%s Air Terminal", zone.Name()), "", "", "", "Autosize")
	inletPorts := NewObjectWithHandle(TypePortList, fmt.Sprintf("%s Inlet Port List", zone.Name()), zone.Handle())
	returnPorts := NewObjectWithHandle(TypePortList, fmt.Sprintf("%s Return Port List", zone.Name()), zone.Handle())

	toTerminal := newConnection(splitter, terminal)
	toZone := newConnection(terminal, inletPorts)
	toMixer := newConnection(returnPorts, mixer)

	splitter.Fields = append(splitter.Fields, toTerminal.Handle())
	mixer.Fields = append(mixer.Fields, toMixer.Handle())
	terminal.SetField(3, toTerminal.Handle())
	terminal.SetField(4, toZone.Handle())
	inletPorts.Fields = append(inletPorts.Fields, toZone.Handle())
	returnPorts.Fields = append(returnPorts.Fields, toMixer.Handle())

	zone.obj.SetField(zoneInletPortListField, inletPorts.Handle())
	zone.obj.SetField(zoneInletPortListField+3, returnPorts.Handle())

	for _, obj := range []*Object{terminal, inletPorts, returnPorts, toTerminal, toZone, toMixer} {
		if err := m.AddObject(obj); err != nil {
			return err
		}
	}
	return nil
}

func newConnection(source, target *Object) *Object {
	return NewObjectWithHandle(TypeConnection, "", source.Handle(), "", target.Handle(), "")
}

// SetControlZone. control zone of the first single zone reheat setpoint manager whose name starts with the loop name.
func (m *Model) SetControlZone(loop AirLoopHVAC, zone ThermalZone) error {
	for _, spm := range m.ObjectsOfType(TypeSetpointManagerSingleZoneRH) {
		if strings.HasPrefix(spm.Name(), loop.Name()) {
			spm.SetField(setpointManagerControlZoneField, zone.Handle())
			return nil
		}
	}
	return fmt.Errorf("air loop '%s' has no single zone reheat setpoint manager", loop.Name())
}
