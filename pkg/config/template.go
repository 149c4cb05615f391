package config

// DefaultFileName is the file written by --init.
const DefaultFileName = ".stylefmtrc.yaml"

// Template is the commented configuration written by --init.
const Template = `# stylefmt configuration
#
# Values shown are the built-in defaults. Remove a key to fall back to them.

# Files merged underneath this one; relative paths resolve against
# --config-basedir, or this file's directory.
# extends:
#   - ./shared/stylefmt.yaml

# Spaces per nesting level (ignored when use-tabs is true).
indent: 2
use-tabs: false

# Hex colors: lower | upper | "" (leave as written).
color-hex-case: lower

# Hex colors: short | long | "" (leave as written).
color-hex-length: ""

# Strings: double | single | "" (leave as written).
string-quotes: ""

# Empty line before every rule that is not first in its block.
blank-line-before-rule: true

# Maximum consecutive empty lines kept elsewhere.
max-empty-lines: 1

# End files with exactly one newline.
final-newline: true
`
