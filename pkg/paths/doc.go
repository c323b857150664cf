// Package paths locates anek projects and resolves category files.
//
// A project is any directory containing a .anek directory. The .anek
// directory holds one sub-directory per category (variables, inputs,
// commands, pipelines, templates, loops, batch) and a file inside a
// category may be replaced or extended by a "<name>.d" drop-in directory.
//
// # Usage
//
//	project, err := paths.Find(filesystem.NewOS(), ".")
//	if err != nil {
//	    return err
//	}
//	file := project.ResolveExisting(types.Inputs, "prod")
package paths
