// Package io reads and writes memory initialisation (MIF) images, the
// text format FPGA tools use to preload on-chip memory.
package io
