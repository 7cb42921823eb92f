package native

// State mirrors the engine's media/player state enumeration.
type State int

const (
	StateNothingSpecial State = iota
	StateOpening
	StateBuffering
	StatePlaying
	StatePaused
	StateStopped
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateNothingSpecial:
		return "idle"
	case StateOpening:
		return "opening"
	case StateBuffering:
		return "buffering"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseStatus is the payload of a MediaParsedChanged event.
type ParseStatus int

const (
	ParseNone ParseStatus = iota
	ParseSkipped
	ParseFailed
	ParseTimeout
	ParseDone
)

// Meta enumerates the fixed set of metadata fields.
type Meta int

const (
	MetaTitle Meta = iota
	MetaArtist
	MetaGenre
	MetaCopyright
	MetaAlbum
	MetaTrackNumber
	MetaDescription
	MetaRating
	MetaDate
	MetaSetting
	MetaURL
	MetaLanguage
	MetaNowPlaying
	MetaPublisher
	MetaEncodedBy
	MetaArtworkURL
	MetaTrackID
)

var metaNames = [...]string{
	"Title", "Artist", "Genre", "Copyright", "Album", "TrackNumber", "Description", "Rating", "Date",
	"Setting", "URL", "Language", "NowPlaying", "Publisher", "EncodedBy", "ArtworkURL", "TrackID",
}

func (m Meta) String() string {
	if m < 0 || int(m) >= len(metaNames) {
		return "Unknown"
	}
	return metaNames[m]
}

// MetaFields lists every metadata field in enumeration order.
func MetaFields() []Meta {
	fields := make([]Meta, len(metaNames))
	for i := range fields {
		fields[i] = Meta(i)
	}
	return fields
}

// NavigateMode selects a DVD menu navigation action.
type NavigateMode int

const (
	NavigateActivate NavigateMode = iota
	NavigateUp
	NavigateDown
	NavigateLeft
	NavigateRight
)

// TrackType classifies an elementary stream.
type TrackType int

const (
	TrackUnknown TrackType = iota - 1
	TrackAudio
	TrackVideo
	TrackText
)

func (t TrackType) String() string {
	switch t {
	case TrackAudio:
		return "audio"
	case TrackVideo:
		return "video"
	case TrackText:
		return "text"
	default:
		return "unknown"
	}
}

// TrackInfo describes one elementary stream of a parsed media.
type TrackInfo struct {
	ID          int
	Type        TrackType
	Codec       uint32
	Profile     int
	Level       int
	Bitrate     uint32
	Language    string
	Description string

	// Audio
	Channels uint32
	Rate     uint32

	// Video
	Width        uint32
	Height       uint32
	FrameRateNum uint32
	FrameRateDen uint32

	// Text
	Encoding string
}

// CodecName renders the fourcc code as text.
func (t TrackInfo) CodecName() string {
	b := []byte{byte(t.Codec), byte(t.Codec >> 8), byte(t.Codec >> 16), byte(t.Codec >> 24)}
	return string(b)
}

// Stats holds the input, demux and output counters of a playing media.
type Stats struct {
	ReadBytes          int64
	InputBitrate       float32
	DemuxReadBytes     int64
	DemuxBitrate       float32
	DemuxCorrupted     int64
	DemuxDiscontinuity int64
	DecodedVideo       int64
	DecodedAudio       int64
	DisplayedPictures  int64
	LostPictures       int64
	PlayedAudioBuffers int64
	LostAudioBuffers   int64
}

// DescriptionKind selects which description list to enumerate.
type DescriptionKind int

const (
	DescriptionTitles DescriptionKind = iota
	DescriptionChapters
	DescriptionAudioTracks
	DescriptionVideoTracks
	DescriptionSpuTracks
)

// Description is a copied entry of a native description list.
type Description struct {
	ID   int
	Name string
}

// Param identifies a scalar player parameter read or written through the Int/Float/String accessors.
type Param int

// Audio and track selection parameters.
const (
	ParamVolume Param = iota
	ParamMute
	ParamAudioTrack
	ParamAudioTrackCount
	ParamAudioChannel
	ParamAudioDelay
	ParamVideoTrack
	ParamVideoTrackCount
	ParamSpu
	ParamSpuCount
	ParamSpuDelay
	ParamTitle
	ParamTitleCount
	ParamChapter
	ParamChapterCount
	// ParamAudioOutput is the audio output module name, e.g. "pulse". Write only on libVLC.
	ParamAudioOutput
	// ParamAudioOutputDevice is a device identifier of the current audio output module.
	ParamAudioOutputDevice
	ParamAudioOutputDeviceType
)

// Video geometry parameters.
const (
	ParamScale Param = iota + 100
	ParamAspectRatio
	ParamCropGeometry
	ParamDeinterlace
)

// Logo overlay parameters.
const (
	ParamLogoEnable Param = iota + 200
	ParamLogoFile
	ParamLogoX
	ParamLogoY
	ParamLogoDelay
	ParamLogoRepeat
	ParamLogoOpacity
	ParamLogoPosition
)

// Marquee overlay parameters.
const (
	ParamMarqueeEnable Param = iota + 300
	ParamMarqueeText
	ParamMarqueeColor
	ParamMarqueeOpacity
	ParamMarqueePosition
	ParamMarqueeRefresh
	ParamMarqueeSize
	ParamMarqueeTimeout
	ParamMarqueeX
	ParamMarqueeY
)

// Video adjust filter parameters.
const (
	ParamAdjustEnable Param = iota + 400
	ParamAdjustContrast
	ParamAdjustBrightness
	ParamAdjustHue
	ParamAdjustSaturation
	ParamAdjustGamma
)
