package song

// catalog pairs a well-known lyric line with its artist. Alternate
// spellings of the artist go in accept.
var catalog = []entry{
	{lyric: "انت عمري اللي ابتدا بنورك صباحه", artist: "ام كلثوم", accept: []string{"أم كلثوم", "كوكب الشرق"}},
	{lyric: "نسم علينا الهوا من مفرق الوادي", artist: "فيروز", accept: []string{"فيروز الرحباني"}},
	{lyric: "اهواك واتمنى لو انساك", artist: "عبد الحليم حافظ", accept: []string{"عبدالحليم حافظ", "عبد الحليم", "العندليب"}},
	{lyric: "الاماكن كلها مشتاقه لك", artist: "محمد عبده", accept: []string{"فنان العرب"}},
	{lyric: "زيديني عشقا زيديني", artist: "كاظم الساهر", accept: []string{"كاظم"}},
	{lyric: "نور العين يا حبيبي يا ساكن خيالي", artist: "عمرو دياب", accept: []string{"الهضبه"}},
	{lyric: "قولي احبك كي تزيد وسامتي", artist: "كاظم الساهر", accept: []string{"كاظم"}},
	{lyric: "بكتب اسمك يا حبيبي عالحور العتيق", artist: "فيروز"},
	{lyric: "سيره الحب ما تنتهي", artist: "ام كلثوم", accept: []string{"أم كلثوم"}},
	{lyric: "يا طيور الجو ميلي عالحبايب", artist: "اسمهان", accept: []string{"أسمهان"}},
	{lyric: "مذهله انا كلي فخر انك لي", artist: "محمد عبده", accept: []string{"فنان العرب"}},
	{lyric: "تملي معاك وان كنت بعيد عني", artist: "عمرو دياب", accept: []string{"الهضبه"}},
	{lyric: "على بالي يا ناسيني على بالي", artist: "شيرين", accept: []string{"شيرين عبد الوهاب"}},
	{lyric: "بحبك وحشتيني انتي حياتي وسنيني", artist: "حسين الجسمي", accept: []string{"الجسمي"}},
	{lyric: "يا مسافر وحدك وفايتني ليه", artist: "محمد عبد الوهاب", accept: []string{"عبد الوهاب", "موسيقار الاجيال"}},
}
