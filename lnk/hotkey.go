package lnk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VirtualKey is the key part of a hot key.
type VirtualKey uint8

var virtualKeyNames = map[VirtualKey]string{
	0x90: "NUM LOCK",
	0x91: "SCROLL LOCK",
}

func init() {
	for key := VirtualKey('0'); key <= '9'; key++ {
		virtualKeyNames[key] = string(rune(key))
	}
	for key := VirtualKey('A'); key <= 'Z'; key++ {
		virtualKeyNames[key] = string(rune(key))
	}
	for i := 0; i < 24; i++ {
		virtualKeyNames[VirtualKey(0x70+i)] = fmt.Sprintf("F%d", i+1)
	}
}

func (k VirtualKey) String() string {
	if name, ok := virtualKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", uint8(k))
}

// MarshalText renders the key by name.
func (k VirtualKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// HotKeyModifiers are the modifier keys of a hot key.
type HotKeyModifiers uint8

// Hot key modifiers.
const (
	HotKeyShift   HotKeyModifiers = 0x01
	HotKeyControl HotKeyModifiers = 0x02
	HotKeyAlt     HotKeyModifiers = 0x04
)

var hotKeyModifierNames = []flagName{
	{uint32(HotKeyShift), "SHIFT"},
	{uint32(HotKeyControl), "CONTROL"},
	{uint32(HotKeyAlt), "ALT"},
}

func (m HotKeyModifiers) String() string {
	return strings.Join(flagNames(uint32(m), hotKeyModifierNames), "+")
}

// MarshalJSON renders the set modifiers by name.
func (m HotKeyModifiers) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(m), hotKeyModifierNames))
}

// HotKey is the keyboard shortcut that activates the link.
type HotKey struct {
	Key       VirtualKey      `json:"key"`
	Modifiers HotKeyModifiers `json:"modifiers"`
}

func (h HotKey) String() string {
	if h.Modifiers == 0 {
		return h.Key.String()
	}
	return h.Modifiers.String() + "+" + h.Key.String()
}
