// Package workspace finds the packages of a multi-package repository and
// builds their descriptors.
//
// A workspace root may itself be a package. Its member packages live in the
// direct children of the configured workspace directories ("packages" and
// any "@scope" directory by default). Discovery is sorted, so repeated runs
// over an unchanged tree list packages in the same order.
//
// Builds are independent: one package failing never stops the others.
package workspace
