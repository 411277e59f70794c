/*
Package smartcontract contains functions to deal with widely used scripts and
NEO smart contract parameters. Neo is all about various executed code, verification
and invocation scripts are regular NEO VM programs, and every contract method
accepts a set of typed parameters. This package provides the Builder to construct
invocation scripts, helpers to create and recognize standard signature and
multisignature verification scripts and the Parameter type used on the RPC
boundary.
*/
package smartcontract
