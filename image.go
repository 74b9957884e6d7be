package tfrecord

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/mlrecord/tfrecord/tfproto"
)

// FromImage encodes a stdlib image.Image as a PNG-backed Image summary
// value. The color space is inferred from the image's concrete pixel
// type.
func FromImage(img image.Image) (*tfproto.Image, error) {
	bounds := img.Bounds()
	colorspace := colorSpaceFor(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ErrConversion{Description: "png encode: " + err.Error()}
	}
	return &tfproto.Image{
		Height:             int32(bounds.Dy()),
		Width:              int32(bounds.Dx()),
		Colorspace:         int32(colorspace),
		EncodedImageString: buf.Bytes(),
	}, nil
}

// colorSpaceFor infers a color space from an image's concrete pixel type.
// color.Model values wrap function types and are not safe to compare with
// ==, so this switches on the image itself rather than on img.ColorModel().
func colorSpaceFor(img image.Image) tfproto.ColorSpace {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return tfproto.ColorSpaceLuma
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return tfproto.ColorSpaceRGBA
	default:
		return tfproto.ColorSpaceRGB
	}
}

// normalizeFloats computes the linear scale and offset that remap a slice
// of float64 samples into the [0, 255] uint8 range used by PNG encoding.
// When every finite value is non-negative the range maps directly to
// [0, 255]; otherwise it is centered at 128 so that both negative and
// positive extremes fit.
func normalizeFloats(values []float64) (scale, offset float64, err error) {
	min, max := math.Inf(1), math.Inf(-1)
	seen := false
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		seen = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !seen {
		return 0, 0, &ErrConversion{Description: "tensor has no finite values"}
	}
	if min >= 0 {
		if max == 0 {
			return 0, 0, nil
		}
		return 255 / max, 0, nil
	}
	absMax := math.Abs(min)
	if max > absMax {
		absMax = max
	}
	if absMax == 0 {
		return 0, 128, nil
	}
	return 127 / absMax, 128, nil
}

func remapToUint8(values []float64, scale, offset float64) []uint8 {
	out := make([]uint8, len(values))
	for i, v := range values {
		px := v*scale + offset
		switch {
		case px < 0:
			px = 0
		case px > 255:
			px = 255
		}
		out[i] = uint8(px)
	}
	return out
}

func imageFromChannels(height, width, channels int, pixels []uint8) (image.Image, tfproto.ColorSpace, error) {
	if len(pixels) != height*width*channels {
		return nil, 0, &ErrInvalidArgument{Description: "pixel count does not match height*width*channels"}
	}
	switch channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, width, height))
		copy(img.Pix, pixels)
		return img, tfproto.ColorSpaceLuma, nil
	case 2:
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		for i := 0; i < height*width; i++ {
			luma, alpha := pixels[2*i], pixels[2*i+1]
			img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2], img.Pix[4*i+3] = luma, luma, luma, alpha
		}
		return img, tfproto.ColorSpaceLumaAlpha, nil
	case 3:
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		for i := 0; i < height*width; i++ {
			img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2] = pixels[3*i], pixels[3*i+1], pixels[3*i+2]
			img.Pix[4*i+3] = 255
		}
		return img, tfproto.ColorSpaceRGB, nil
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		copy(img.Pix, pixels)
		return img, tfproto.ColorSpaceRGBA, nil
	default:
		return nil, 0, &ErrInvalidArgument{Description: "unsupported channel count"}
	}
}

func encodeFromPixels(height, width, channels int, pixels []uint8) (*tfproto.Image, error) {
	img, colorspace, err := imageFromChannels(height, width, channels, pixels)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ErrConversion{Description: "png encode: " + err.Error()}
	}
	return &tfproto.Image{
		Height:             int32(height),
		Width:              int32(width),
		Colorspace:         int32(colorspace),
		EncodedImageString: buf.Bytes(),
	}, nil
}

// FromTensorHWC converts a single image laid out height-major,
// width-minor, channel-fastest (data[h*width*channels + w*channels + c])
// into an Image summary value, remapping float samples into uint8 per
// normalizeFloats.
func FromTensorHWC(height, width, channels int, data []float64) (*tfproto.Image, error) {
	scale, offset, err := normalizeFloats(data)
	if err != nil {
		return nil, err
	}
	return encodeFromPixels(height, width, channels, remapToUint8(data, scale, offset))
}

// FromTensorCHW converts a single image laid out channel-major
// (data[c*height*width + h*width + w]) into an Image summary value.
func FromTensorCHW(channels, height, width int, data []float64) (*tfproto.Image, error) {
	hwc := make([]float64, len(data))
	for c := 0; c < channels; c++ {
		for h := 0; h < height; h++ {
			for w := 0; w < width; w++ {
				hwc[(h*width+w)*channels+c] = data[(c*height+h)*width+w]
			}
		}
	}
	return FromTensorHWC(height, width, channels, hwc)
}

// FromTensorBatch converts a leading-batch-dimension CHW tensor
// (data[n*channels*height*width + ...]) into one Image per batch element.
func FromTensorBatch(n, channels, height, width int, data []float64) ([]*tfproto.Image, error) {
	stride := channels * height * width
	if len(data) != n*stride {
		return nil, &ErrInvalidArgument{Description: "data length does not match batch dimensions"}
	}
	images := make([]*tfproto.Image, n)
	for i := 0; i < n; i++ {
		img, err := FromTensorCHW(channels, height, width, data[i*stride:(i+1)*stride])
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	return images, nil
}

type histogramFromImage struct{ img image.Image }

// tryIntoHistogram folds every channel sample of every pixel (as returned
// by image.Image.At(x, y).RGBA(), 16-bit premultiplied component values)
// into a fresh default-bucketed Accumulator.
func (h histogramFromImage) tryIntoHistogram() (*tfproto.HistogramProto, error) {
	bounds := h.img.Bounds()
	acc := NewDefaultAccumulator()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := h.img.At(x, y).RGBA()
			for _, channel := range [4]uint32{r, g, b, a} {
				if err := acc.Add(float64(channel), 1); err != nil {
					return nil, err
				}
			}
		}
	}
	return acc.Snapshot(), nil
}

// HistogramOfImage folds every pixel channel value of img into a fresh
// default-bucketed Accumulator, for use with FromHistogram.
func HistogramOfImage(img image.Image) Histogrammable {
	return histogramFromImage{img}
}
