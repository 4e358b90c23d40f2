/*
Package config loads the textfilter configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Names the dictionary files that make up the phrase table
- Holds inline replacements for small setups
- Tunes the shell timers (debounce, copied window)
- Selects optional Unicode normalization

🔄 Flow:
1. Reads the file named by --config, or .textfilter.yaml when present
2. Decodes it by extension
3. Applies defaults and validates
4. Builds the immutable dictionary once, at startup

Example (YAML):

	dictionaries:
	  - dictionaries/*.yaml
	replacements:
	  هاک: ه*ا*ک
	debounce: 200ms
	copied_window: 2s
	normalize: NFC

Example (HCL):

	dictionaries = ["dictionaries/*.hcl"]
	debounce     = "200ms"

	replacement {
	  from = "هاک"
	  to   = "ه*ا*ک"
	}

Dictionary patterns resolve relative to the directory holding the config file. With no
patterns and no inline replacements the embedded default dictionary is used.
*/
package config
