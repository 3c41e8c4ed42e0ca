package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# CalcBuilder configuration
#
# Search order (first match wins):
#   ./.calcbuilder.yaml
#   ~/.config/calcbuilder/config.yaml
#   /etc/calcbuilder/config.yaml
# Environment variables prefixed with CALCBUILDER_ override file values,
# e.g. CALCBUILDER_UI_THEME=minimal.

version: "1.0"

storage:
  # JSON file the session is saved to
  path: ~/.local/share/calcbuilder/state.json
  # Key the session is stored under inside the file
  namespace: calculator-storage
  # Save after every input, undo, redo and tile change
  autosave: true

journal:
  # Append every input to a JSON lines journal that "calcbuilder replay" can read
  enabled: false
  path: ~/.local/share/calcbuilder/journal.jsonl

ui:
  # default, high-contrast or minimal
  theme: default
  # Tiles per row in the builder and palette grids (1-8)
  columns: 4
  # auto, always or never
  color_mode: auto
  # How long status messages stay in the footer
  status_timeout: 3s

output:
  # Format for headless commands: text, json, markdown or csv
  default_format: text
  verbose: false
`
}

// MinimalSampleConfig returns a compact configuration with the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"
storage:
  path: ~/.local/share/calcbuilder/state.json
  autosave: true
ui:
  theme: default
output:
  default_format: text
`
}
