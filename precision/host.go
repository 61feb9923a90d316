package precision

import "github.com/klauspost/cpuid/v2"

// DetectHost reads the CPU identification of the running machine.
func DetectHost() Host {
	return Host{
		Vendor: cpuid.CPU.VendorString,
		Brand:  cpuid.CPU.BrandName,
		FMA:    cpuid.CPU.Supports(cpuid.FMA3),
	}
}
