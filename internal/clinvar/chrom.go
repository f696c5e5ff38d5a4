package clinvar

import "strconv"

// validChroms holds the primary assembly chromosome names, with and without
// the "chr" prefix.
var validChroms = func() map[string]struct{} {
	names := make([]string, 0, 25)
	for i := 1; i <= 22; i++ {
		names = append(names, strconv.Itoa(i))
	}
	names = append(names, "X", "Y", "MT")

	set := make(map[string]struct{}, 2*len(names))
	for _, n := range names {
		set[n] = struct{}{}
		set["chr"+n] = struct{}{}
	}
	return set
}()

// IsValidChrom reports whether chrom names a primary chromosome.
// Contigs such as "GL000220.1" are not valid.
func IsValidChrom(chrom string) bool {
	_, ok := validChroms[chrom]
	return ok
}
