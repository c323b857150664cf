package types

import (
	"fmt"
	"strings"
)

// Category is one of the fixed sub-directories of a .anek directory
type Category int

const (
	Variables Category = iota
	Inputs
	Commands
	Pipelines
	Templates
	Loops
	Batch
)

// AllCategories returns every category in creation and listing order
func AllCategories() []Category {
	return []Category{Variables, Inputs, Commands, Templates, Pipelines, Loops, Batch}
}

// DirName is the directory name of the category inside .anek
func (c Category) DirName() string {
	switch c {
	case Variables:
		return "variables"
	case Inputs:
		return "inputs"
	case Commands:
		return "commands"
	case Pipelines:
		return "pipelines"
	case Templates:
		return "templates"
	case Loops:
		return "loops"
	case Batch:
		return "batch"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) String() string {
	return c.DirName()
}

// Title is the capitalized name used in reports and graphs
func (c Category) Title() string {
	name := c.DirName()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Description is the long help text of the category
func (c Category) Description() string {
	switch c {
	case Variables:
		return "Variable file contains the descriptions of the variables.\n\n" +
			"These files are not required, but help with keeping it documented, " +
			"and make it easy to verify variables are not misspelled in the " +
			"input files or commands."
	case Inputs:
		return "Input files are files containing the variables and their values.\n\n" +
			"They are used to render the commands. Input files grouped in a " +
			"directory can be passed as a single input to use all the variables in it."
	case Commands:
		return "Command files have command templates in them.\n\n" +
			"They are simple commands, or calls to scripts with arguments. " +
			"Variables in braces are rendered with the value of the variable " +
			"from the input files."
	case Pipelines:
		return "Pipelines are sequences of commands.\n\n" +
			"Running a pipeline runs its commands one after another in the " +
			"given order using the same input variables to render them."
	case Templates:
		return "Templates are files that can be rendered using inputs.\n\n" +
			"Any of inputs, batch or loops can be used. Text surrounded by " +
			"clippers `----8<----` is repeated for each input while the rest " +
			"is rendered once."
	case Loops:
		return "Loops loop through multiple variables' values.\n\n" +
			"Loops are directories that have a file for each variable. " +
			"Put multiple values in a variable's file to loop through those " +
			"values, for as many variables as needed."
	case Batch:
		return "Batch files are lists of inputs.\n\n" +
			"Unlike grouping inputs in a directory, which processes them as a " +
			"single input with all the variables, each line of a batch file " +
			"is processed as its own job."
	}
	return ""
}

// ParseCategory converts a directory name into a Category
func ParseCategory(name string) (Category, error) {
	for _, c := range AllCategories() {
		if c.DirName() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}
