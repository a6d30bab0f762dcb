// Package layout converts typed byte regions between row-major (native)
// element order and column-major (foreign) element order for arrays of rank
// 1 through 4.
//
// All functions are pure: they know nothing about file formats, perform no
// I/O and allocate nothing beyond what the caller supplies. Complex-aware
// variants additionally translate between the interleaved representation
// (real half then imaginary half per element) used in memory and the split
// representation (one all-real plane, one all-imaginary plane) required by
// column-major container formats.
package layout

import "github.com/arrio/arrio/dtype"

// colMajorStrides returns the element stride of each dimension in
// column-major order: dimension 0 is contiguous, each later dimension
// strides by the product of all earlier extents.
func colMajorStrides(shape []int) [dtype.MaxRank]int {
	var strides [dtype.MaxRank]int
	acc := 1
	for d := 0; d < len(shape); d++ {
		strides[d] = acc
		acc *= shape[d]
	}
	return strides
}

// advance increments idx as a row-major odometer over shape and adjusts the
// running column-major offset accordingly.
func advance(idx []int, shape []int, strides *[dtype.MaxRank]int, foreign int) int {
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d]++
		foreign += strides[d]
		if idx[d] < shape[d] {
			return foreign
		}
		idx[d] = 0
		foreign -= shape[d] * strides[d]
	}
	return foreign
}

func validate(info dtype.Typeinfo) (count, esize int, err error) {
	if info.Rank() < 1 || info.Rank() > dtype.MaxRank {
		return 0, 0, &dtype.DimensionError{Rank: info.Rank(), Max: dtype.MaxRank}
	}
	esize = info.Dtype.Size()
	if esize == 0 {
		return 0, 0, &dtype.TypeError{Got: info.Dtype, Expected: dtype.Float64}
	}
	return info.ElementCount(), esize, nil
}

// ToForeign copies src (native order) into dst (foreign order), one element
// at a time. Rank 1 degenerates to a straight byte copy.
func ToForeign(src, dst []byte, info dtype.Typeinfo) error {
	count, esize, err := validate(info)
	if err != nil {
		return err
	}
	if info.Rank() == 1 {
		copy(dst[:count*esize], src[:count*esize])
		return nil
	}
	strides := colMajorStrides(info.Shape)
	idx := make([]int, info.Rank())
	foreign := 0
	for lin := 0; lin < count; lin++ {
		copy(dst[foreign*esize:(foreign+1)*esize], src[lin*esize:(lin+1)*esize])
		foreign = advance(idx, info.Shape, &strides, foreign)
	}
	return nil
}

// ToNative copies src (foreign order) into dst (native order). It is the
// exact inverse of ToForeign.
func ToNative(src, dst []byte, info dtype.Typeinfo) error {
	count, esize, err := validate(info)
	if err != nil {
		return err
	}
	if info.Rank() == 1 {
		copy(dst[:count*esize], src[:count*esize])
		return nil
	}
	strides := colMajorStrides(info.Shape)
	idx := make([]int, info.Rank())
	foreign := 0
	for lin := 0; lin < count; lin++ {
		copy(dst[lin*esize:(lin+1)*esize], src[foreign*esize:(foreign+1)*esize])
		foreign = advance(idx, info.Shape, &strides, foreign)
	}
	return nil
}

// ToForeignSplit performs the native→foreign transposition for interleaved
// complex elements, de-interleaving each element's halves into dstRe and
// dstIm. Both destination planes hold ElementCount() halves of half the
// element size each.
func ToForeignSplit(src, dstRe, dstIm []byte, info dtype.Typeinfo) error {
	count, esize, err := validate(info)
	if err != nil {
		return err
	}
	half := esize / 2
	strides := colMajorStrides(info.Shape)
	idx := make([]int, info.Rank())
	foreign := 0
	for lin := 0; lin < count; lin++ {
		copy(dstRe[foreign*half:(foreign+1)*half], src[lin*esize:lin*esize+half])
		copy(dstIm[foreign*half:(foreign+1)*half], src[lin*esize+half:(lin+1)*esize])
		foreign = advance(idx, info.Shape, &strides, foreign)
	}
	return nil
}

// ToNativeMerge is the inverse of ToForeignSplit: it reads the two foreign
// planes and interleaves them back into native-order elements.
func ToNativeMerge(srcRe, srcIm, dst []byte, info dtype.Typeinfo) error {
	count, esize, err := validate(info)
	if err != nil {
		return err
	}
	half := esize / 2
	strides := colMajorStrides(info.Shape)
	idx := make([]int, info.Rank())
	foreign := 0
	for lin := 0; lin < count; lin++ {
		copy(dst[lin*esize:lin*esize+half], srcRe[foreign*half:(foreign+1)*half])
		copy(dst[lin*esize+half:(lin+1)*esize], srcIm[foreign*half:(foreign+1)*half])
		foreign = advance(idx, info.Shape, &strides, foreign)
	}
	return nil
}
