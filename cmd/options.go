package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Parfile string `short:"f" long:"parfile" description:"MCMCrun parameter file (INI, or YAML by extension); any afs URL"`
	Debug   bool   `short:"d" long:"debug" description:"development logging at debug level"`

	Check    *CheckCmd    `command:"check"    description:"Parse, validate and check one or more parameter files"`
	Show     *ShowCmd     `command:"show"     description:"Print the typed parameter record"`
	Convert  *ConvertCmd  `command:"convert"  description:"Write the parameter record as INI or YAML"`
	Set      *SetCmd      `command:"set"      description:"Change one key in a parameter file"`
	Watch    *WatchCmd    `command:"watch"    description:"Re-check the parameter file on every save"`
	Simulate *SimulateCmd `command:"simulate" description:"Generate tangent-plane points and their equatorial projection"`
}

// Init instantiates the sub-command referenced by the first non-option
// argument so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "check":
		o.Check = &CheckCmd{}
	case "show":
		o.Show = &ShowCmd{}
	case "convert":
		o.Convert = &ConvertCmd{}
	case "set":
		o.Set = &SetCmd{}
	case "watch":
		o.Watch = &WatchCmd{}
	case "simulate":
		o.Simulate = &SimulateCmd{}
	}
}
