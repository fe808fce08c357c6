// Package config loads the lightbox configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lightbox/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// Missing config files are NOT an error; the viewer works out of the box.
//
// # TOML Format
//
// Every key is optional:
//
//	drag = true
//	zoomable = true
//	printable = true
//	loop = true
//	zoom_speed = 0.05
//	min_scale = 0.1
//	max_scale = 4
//	default_size = { width = 640, height = 480 }
//	default_img = "~/Pictures/broken.png"
//	download_dir = "~/Downloads"
//	print_command = "lp -d office"
//	doc_batch_size = 5
//	doc_print_batch_size = 10
//	cell_width = 8
//	cell_height = 16
//	log_file = "~/.local/state/lightbox/lightbox.log"
//	remote = "https://gallery.example.com"
//	refresh_seconds = 5
//
// Toolbar groups (zoomable, rotatable, scalable, changeable) and drag,
// loop and show_total default to true; downloadable and printable default
// to false. The no_* keys suppress parts of the screen.
//
// # Path Expansion
//
// Tilde paths are expanded to the home directory and relative paths are
// made absolute, for the config file itself and for default_img,
// download_dir and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// a missing file, and TOML parse errors ("parse config: ...").
package config
